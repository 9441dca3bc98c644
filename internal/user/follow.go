package user

import (
	"github.com/lib/pq"

	"github.com/onfr0y/Sp-app/internal/apperr"
)

// ApplyFollowEdge ajoute (add=true) ou retire (add=false) l'arête
// follower -> target : followers de la cible et followings du suiveur sont
// mis à jour en miroir.
//
// Les deux écritures sont séquentielles et non transactionnelles. Si la
// seconde échoue, la première reste appliquée : fenêtre d'incohérence
// assumée, cohérence dernier-écrivain-gagnant.
func (r *Repo) ApplyFollowEdge(followerID, targetID string, add bool) error {
	if followerID == targetID {
		return apperr.BadRequest("Impossible de se suivre soi-même")
	}

	target, err := r.GetByID(targetID)
	if err != nil {
		return err
	}
	follower, err := r.GetByID(followerID)
	if err != nil {
		return err
	}

	alreadyFollowing := contains(target.Followers, followerID)
	if add && alreadyFollowing {
		return apperr.Forbidden("Déjà abonné à cet utilisateur")
	}
	if !add && !alreadyFollowing {
		return apperr.Forbidden("Pas abonné à cet utilisateur")
	}

	newFollowers := toggleMember(target.Followers, followerID, add)
	if err := r.db.Model(&User{}).Where("id = ?", targetID).
		Update("followers", newFollowers).Error; err != nil {
		return apperr.Internal("Erreur mise à jour des followers", err)
	}

	newFollowings := toggleMember(follower.Followings, targetID, add)
	if err := r.db.Model(&User{}).Where("id = ?", followerID).
		Update("followings", newFollowings).Error; err != nil {
		return apperr.Internal("Erreur mise à jour des followings", err)
	}

	return nil
}

func contains(list pq.StringArray, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

// toggleMember renvoie la liste avec id ajouté ou retiré, sans doublon.
func toggleMember(list pq.StringArray, id string, add bool) pq.StringArray {
	out := make(pq.StringArray, 0, len(list)+1)
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	if add {
		out = append(out, id)
	}
	return out
}
