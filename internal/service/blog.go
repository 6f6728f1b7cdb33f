package service

import (
	"net/http"
	"time"

	"github.com/shashankb2004/edublog/internal/domain"
	"github.com/shashankb2004/edublog/internal/errors"
)

type BlogService interface {
	List() ([]domain.Blog, error)
	ListByAuthor(author domain.UserId) ([]domain.Blog, error)
	Get(id domain.BlogId) (domain.Blog, error)
	Create(author domain.UserId, title, category, content, excerpt, image string) (domain.Blog, error)
	Update(requester domain.UserId, id domain.BlogId, upd domain.BlogUpdate) (domain.Blog, error)
	Delete(requester domain.UserId, id domain.BlogId) error
}

type BlogStorage interface {
	Blogs() ([]domain.Blog, error)
	BlogsByAuthor(author domain.UserId) ([]domain.Blog, error)
	Blog(id domain.BlogId) (domain.Blog, error)
	CreateBlog(blog domain.Blog) (domain.Blog, error)
	UpdateBlog(blog domain.Blog) error
	DeleteBlog(id domain.BlogId) error
}

type Blog struct {
	storage       BlogStorage
	excerptLength int
}

func NewBlog(storage BlogStorage, excerptLength int) *Blog {
	return &Blog{storage: storage, excerptLength: excerptLength}
}

func (b *Blog) List() ([]domain.Blog, error) {
	return b.storage.Blogs()
}

func (b *Blog) ListByAuthor(author domain.UserId) ([]domain.Blog, error) {
	return b.storage.BlogsByAuthor(author)
}

func (b *Blog) Get(id domain.BlogId) (domain.Blog, error) {
	return b.storage.Blog(id)
}

// Create validates fields, derives the excerpt when absent and stamps the author.
func (b *Blog) Create(author domain.UserId, title, category, content, excerpt, image string) (domain.Blog, error) {
	if title == "" || category == "" || content == "" || image == "" {
		return domain.Blog{}, &errors.ErrorWithStatusCode{Message: "All fields are required", StatusCode: http.StatusBadRequest}
	}
	if !domain.ValidCategory(category) {
		return domain.Blog{}, &errors.ErrorWithStatusCode{Message: "Invalid category", StatusCode: http.StatusBadRequest}
	}
	if excerpt == "" {
		excerpt = deriveExcerpt(content, b.excerptLength)
	}

	return b.storage.CreateBlog(domain.Blog{
		Title:    title,
		Category: category,
		Content:  content,
		Excerpt:  excerpt,
		Image:    image,
		Author:   domain.Author{Id: author},
	})
}

// Update applies a partial update. Only the owning user may update; a supplied
// category is re-validated; the excerpt is re-derived when content changes and
// no explicit excerpt accompanies it.
func (b *Blog) Update(requester domain.UserId, id domain.BlogId, upd domain.BlogUpdate) (domain.Blog, error) {
	blog, err := b.storage.Blog(id)
	if err != nil {
		return domain.Blog{}, err
	}
	if blog.Author.Id != requester {
		return domain.Blog{}, &errors.ErrorWithStatusCode{Message: "Not authorized to edit this blog", StatusCode: http.StatusForbidden}
	}

	if upd.Category != nil {
		if !domain.ValidCategory(*upd.Category) {
			return domain.Blog{}, &errors.ErrorWithStatusCode{Message: "Invalid category", StatusCode: http.StatusBadRequest}
		}
		blog.Category = *upd.Category
	}
	if upd.Title != nil {
		blog.Title = *upd.Title
	}
	if upd.Content != nil {
		blog.Content = *upd.Content
		if upd.Excerpt == nil {
			blog.Excerpt = deriveExcerpt(blog.Content, b.excerptLength)
		}
	}
	if upd.Excerpt != nil {
		blog.Excerpt = *upd.Excerpt
	}
	if upd.Image != nil {
		blog.Image = *upd.Image
	}
	blog.UpdatedAt = time.Now().UTC()

	if err := b.storage.UpdateBlog(blog); err != nil {
		return domain.Blog{}, err
	}
	return blog, nil
}

// Delete removes a blog. Only the owning user may delete.
func (b *Blog) Delete(requester domain.UserId, id domain.BlogId) error {
	blog, err := b.storage.Blog(id)
	if err != nil {
		return err
	}
	if blog.Author.Id != requester {
		return &errors.ErrorWithStatusCode{Message: "Not authorized to delete this blog", StatusCode: http.StatusForbidden}
	}

	return b.storage.DeleteBlog(id)
}

// deriveExcerpt takes the first limit characters of content plus an ellipsis.
func deriveExcerpt(content string, limit int) string {
	runes := []rune(content)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes) + "..."
}
