package user

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/onfr0y/Sp-app/internal/apperr"
)

func userRow(id, username, followers, followings string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "followers", "followings"}).
		AddRow(id, username, followers, followings)
}

func TestApplyFollowEdgeSelfFollow(t *testing.T) {
	repo, mock := newMockRepo(t)

	// Rejet avant la moindre requête : ni lecture ni écriture
	err := repo.ApplyFollowEdge("user-1", "user-1", true)
	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.From(err).Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyFollowEdgeFollow(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT`).
		WillReturnRows(userRow("user-2", "bob", "{}", "{}"))
	mock.ExpectQuery(`SELECT`).
		WillReturnRows(userRow("user-1", "ada", "{}", "{}"))
	mock.ExpectExec(`UPDATE "users"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ApplyFollowEdge("user-1", "user-2", true)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyFollowEdgeAlreadyFollowing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT`).
		WillReturnRows(userRow("user-2", "bob", "{user-1}", "{}"))
	mock.ExpectQuery(`SELECT`).
		WillReturnRows(userRow("user-1", "ada", "{}", "{user-2}"))

	// Déjà abonné : aucune écriture ne doit partir
	err := repo.ApplyFollowEdge("user-1", "user-2", true)
	assert.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.From(err).Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyFollowEdgeNotFollowing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT`).
		WillReturnRows(userRow("user-2", "bob", "{}", "{}"))
	mock.ExpectQuery(`SELECT`).
		WillReturnRows(userRow("user-1", "ada", "{}", "{}"))

	err := repo.ApplyFollowEdge("user-1", "user-2", false)
	assert.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.From(err).Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Les deux écritures miroir ne sont pas transactionnelles : si la seconde
// échoue, la première reste appliquée. Ce test documente cette fenêtre.
func TestApplyFollowEdgePartialFailureWindow(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT`).
		WillReturnRows(userRow("user-2", "bob", "{}", "{}"))
	mock.ExpectQuery(`SELECT`).
		WillReturnRows(userRow("user-1", "ada", "{}", "{}"))
	// followers de la cible : appliqué
	mock.ExpectExec(`UPDATE "users"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// followings du suiveur : échoue
	mock.ExpectExec(`UPDATE "users"`).
		WillReturnError(errors.New("connexion perdue"))

	err := repo.ApplyFollowEdge("user-1", "user-2", true)
	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperr.From(err).Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleMember(t *testing.T) {
	list := toggleMember(nil, "user-1", true)
	assert.Equal(t, []string{"user-1"}, []string(list))

	// Pas de doublon même en cas d'ajout répété
	list = toggleMember(list, "user-1", true)
	assert.Equal(t, []string{"user-1"}, []string(list))

	list = toggleMember(list, "user-1", false)
	assert.Empty(t, []string(list))
}
