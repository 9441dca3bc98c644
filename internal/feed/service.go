package feed

import (
	"time"

	"github.com/onfr0y/Sp-app/internal/apperr"
	"github.com/onfr0y/Sp-app/internal/post"
)

// DefaultDimension remplace une largeur ou hauteur absente, pour éviter les
// éléments de hauteur nulle côté client.
const DefaultDimension = 200

// Projection est la vue minimale d'un post servie au fil d'accueil.
// Recalculée à chaque requête, jamais persistée ni mise en cache.
type Projection struct {
	ID        string    `json:"id"`
	Image     string    `json:"image"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	UserID    string    `json:"userId"`
	Desc      string    `json:"desc"`
	LikeCount int       `json:"likeCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostLister est la vue du dépôt de posts dont le fil a besoin.
type PostLister interface {
	ListAll() ([]post.Post, error)
}

type Service struct {
	posts PostLister
}

func NewService(posts PostLister) *Service {
	return &Service{posts: posts}
}

// GetFeed projette les posts du plus récent au plus ancien. Un post sans
// image exploitable n'apparaît pas dans le fil. Tout ou rien : une erreur
// du dépôt ne renvoie aucun fil partiel.
func (s *Service) GetFeed() ([]Projection, error) {
	posts, err := s.posts.ListAll()
	if err != nil {
		return nil, apperr.ServiceUnavailable("Erreur lors de la récupération du fil", err)
	}

	feed := make([]Projection, 0, len(posts))
	for _, p := range posts {
		if len(p.Images) == 0 || p.Images[0].URL == "" {
			continue
		}
		display := p.Images[0]

		width, height := display.Width, display.Height
		if width <= 0 {
			width = DefaultDimension
		}
		if height <= 0 {
			height = DefaultDimension
		}

		feed = append(feed, Projection{
			ID:        p.ID,
			Image:     display.URL,
			Width:     width,
			Height:    height,
			UserID:    p.UserID,
			Desc:      p.Desc,
			LikeCount: len(p.Likes),
			CreatedAt: p.CreatedAt,
		})
	}
	return feed, nil
}
