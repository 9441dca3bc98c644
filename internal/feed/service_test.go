package feed

import (
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/onfr0y/Sp-app/internal/post"
	"github.com/onfr0y/Sp-app/internal/storage"
)

type fakeLister struct {
	posts []post.Post
	err   error
}

func (f *fakeLister) ListAll() ([]post.Post, error) {
	return f.posts, f.err
}

func TestGetFeedExcludesPostsWithoutImage(t *testing.T) {
	withImage := post.Post{
		ID:     "post-a",
		UserID: "user-1",
		Images: post.ImageList{{URL: "/uploads/posts/a.png", Width: 640, Height: 480}},
	}
	degraded := post.Post{
		ID:     "post-b",
		UserID: "user-1",
		Images: post.ImageList{},
	}

	svc := NewService(&fakeLister{posts: []post.Post{withImage, degraded}})

	feed, err := svc.GetFeed()
	assert.NoError(t, err)
	assert.Len(t, feed, 1)
	assert.Equal(t, "post-a", feed[0].ID)
	assert.Equal(t, "/uploads/posts/a.png", feed[0].Image)
}

func TestGetFeedDimensionFallback(t *testing.T) {
	tests := []struct {
		name           string
		image          storage.Image
		expectedWidth  int
		expectedHeight int
	}{
		{
			name:           "Known dimensions",
			image:          storage.Image{URL: "/a.png", Width: 300, Height: 450},
			expectedWidth:  300,
			expectedHeight: 450,
		},
		{
			name:           "Unknown dimensions",
			image:          storage.Image{URL: "/b.png"},
			expectedWidth:  DefaultDimension,
			expectedHeight: DefaultDimension,
		},
		{
			name:           "Height only missing",
			image:          storage.Image{URL: "/c.png", Width: 300},
			expectedWidth:  300,
			expectedHeight: DefaultDimension,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeLister{posts: []post.Post{{
				ID:     "p",
				Images: post.ImageList{tt.image},
			}}})

			feed, err := svc.GetFeed()
			assert.NoError(t, err)
			assert.Len(t, feed, 1)
			assert.Equal(t, tt.expectedWidth, feed[0].Width)
			assert.Equal(t, tt.expectedHeight, feed[0].Height)
		})
	}
}

func TestGetFeedProjection(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(&fakeLister{posts: []post.Post{{
		ID:        "post-a",
		UserID:    "user-1",
		Desc:      "première photo",
		Images:    post.ImageList{{URL: "/a.jpg", Width: 800, Height: 600}},
		Likes:     pq.StringArray{"user-2", "user-3"},
		CreatedAt: created,
	}}})

	feed, err := svc.GetFeed()
	assert.NoError(t, err)
	assert.Len(t, feed, 1)

	p := feed[0]
	assert.Equal(t, "user-1", p.UserID)
	assert.Equal(t, "première photo", p.Desc)
	assert.Equal(t, 2, p.LikeCount)
	assert.Equal(t, created, p.CreatedAt)
}

func TestGetFeedNoPartialResultOnError(t *testing.T) {
	svc := NewService(&fakeLister{err: errors.New("connexion perdue")})

	feed, err := svc.GetFeed()
	assert.Error(t, err)
	assert.Nil(t, feed)
}
