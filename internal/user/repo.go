package user

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/onfr0y/Sp-app/internal/apperr"
)

// Repo est le seul point d'accès aux lignes users.
type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// Create refuse email ou username déjà pris avant d'écrire quoi que ce soit.
func (r *Repo) Create(u *User) error {
	var count int64
	if err := r.db.Model(&User{}).
		Where("email = ? OR username = ?", u.Email, u.Username).
		Count(&count).Error; err != nil {
		return apperr.Internal("Erreur de base de données", err)
	}
	if count > 0 {
		return apperr.Conflict("Email ou nom d'utilisateur déjà utilisé")
	}

	if err := r.db.Create(u).Error; err != nil {
		if isDuplicate(err) {
			return apperr.Conflict("Email ou nom d'utilisateur déjà utilisé")
		}
		return apperr.Internal("Erreur insertion base utilisateurs", err)
	}
	return nil
}

func (r *Repo) GetByID(id string) (*User, error) {
	var u User
	if err := r.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Utilisateur non trouvé")
		}
		return nil, apperr.Internal("Erreur de base de données", err)
	}
	return &u, nil
}

// FindByEmail est le seul lecteur qui expose le hash, pour la vérification
// du mot de passe à la connexion.
func (r *Repo) FindByEmail(email string) (*User, error) {
	var u User
	if err := r.db.First(&u, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Utilisateur non trouvé")
		}
		return nil, apperr.Internal("Erreur de base de données", err)
	}
	return &u, nil
}

// SearchByUsernamePrefix traite la saisie comme un préfixe littéral : les
// jokers ILIKE (% et _) y sont neutralisés.
func (r *Repo) SearchByUsernamePrefix(prefix string, limit int) ([]User, error) {
	var users []User
	if err := r.db.
		Where("username ILIKE ?", escapeLike(prefix)+"%").
		Order("username").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, apperr.Internal("Erreur de base de données", err)
	}
	return users, nil
}

// Update applique un patch partiel. Les listes miroir ne passent jamais par
// ici : elles ne sont modifiées que par ApplyFollowEdge.
func (r *Repo) Update(id string, patch map[string]interface{}) (*User, error) {
	for _, guarded := range []string{"followers", "followings", "id"} {
		if _, ok := patch[guarded]; ok {
			return nil, apperr.BadRequest("Le champ " + guarded + " n'est pas modifiable directement")
		}
	}

	u, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	if len(patch) > 0 {
		if err := r.db.Model(u).Updates(patch).Error; err != nil {
			if isDuplicate(err) {
				return nil, apperr.Conflict("Email ou nom d'utilisateur déjà utilisé")
			}
			return nil, apperr.Internal("Erreur mise à jour utilisateur", err)
		}
	}

	return r.GetByID(id)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key")
}
