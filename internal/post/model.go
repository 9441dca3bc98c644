package post

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/onfr0y/Sp-app/internal/storage"
)

// ImageList est la liste ordonnée des images d'un post, stockée en jsonb.
// La première entrée est l'image d'affichage du fil. La liste peut être
// vide sur d'anciennes lignes dégradées ; ces posts sont exclus du fil.
type ImageList []storage.Image

func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	return json.Marshal(l)
}

func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = ImageList{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("type inattendu pour ImageList: %T", value)
	}
	if len(raw) == 0 {
		*l = ImageList{}
		return nil
	}
	return json.Unmarshal(raw, l)
}

type Post struct {
	ID        string         `json:"id" gorm:"primaryKey"`
	UserID    string         `json:"user_id" gorm:"index"`
	Desc      string         `json:"desc"`
	Images    ImageList      `json:"img" gorm:"type:jsonb"`
	Likes     pq.StringArray `json:"likes" gorm:"type:text[]"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}
