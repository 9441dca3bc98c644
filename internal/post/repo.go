package post

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/onfr0y/Sp-app/internal/apperr"
)

// Repo est le seul point d'accès aux lignes posts.
type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(p *Post) error {
	if err := r.db.Create(p).Error; err != nil {
		return apperr.Internal("Erreur lors de la création du post", err)
	}
	return nil
}

func (r *Repo) GetByID(id string) (*Post, error) {
	var p Post
	if err := r.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Post non trouvé")
		}
		return nil, apperr.Internal("Erreur de base de données", err)
	}
	return &p, nil
}

// ListAll retourne tous les posts du plus récent au plus ancien. Le tri
// secondaire sur l'id rend l'ordre stable à date de création égale.
// Point d'extension : pagination (limit/offset) quand la collection grossit.
func (r *Repo) ListAll() ([]Post, error) {
	var posts []Post
	if err := r.db.Order("created_at DESC, id").Find(&posts).Error; err != nil {
		return nil, apperr.Internal("Erreur lors de la récupération des posts", err)
	}
	return posts, nil
}

func (r *Repo) Update(id string, patch map[string]interface{}) (*Post, error) {
	p, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := r.db.Model(p).Updates(patch).Error; err != nil {
		return nil, apperr.Internal("Erreur mise à jour du post", err)
	}
	return r.GetByID(id)
}

func (r *Repo) Delete(id string) error {
	result := r.db.Delete(&Post{}, "id = ?", id)
	if result.Error != nil {
		return apperr.Internal("Erreur lors de la suppression du post", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("Post non trouvé")
	}
	return nil
}

// ToggleLike bascule l'appartenance de userID à l'ensemble des likes :
// ajout si absent, retrait si présent, jamais de doublon. Deux bascules
// successives ramènent à l'état initial.
func (r *Repo) ToggleLike(postID, userID string) (liked bool, likeCount int, err error) {
	p, err := r.GetByID(postID)
	if err != nil {
		return false, 0, err
	}

	likes := make(pq.StringArray, 0, len(p.Likes)+1)
	for _, v := range p.Likes {
		if v != userID {
			likes = append(likes, v)
		}
	}
	liked = len(likes) == len(p.Likes) // userID était absent
	if liked {
		likes = append(likes, userID)
	}

	if err := r.db.Model(&Post{}).Where("id = ?", postID).
		Update("likes", likes).Error; err != nil {
		return false, 0, apperr.Internal("Erreur lors de la mise à jour du like", err)
	}

	return liked, len(likes), nil
}
