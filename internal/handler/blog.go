package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/shashankb2004/edublog/internal/domain"
	"github.com/shashankb2004/edublog/internal/middleware"
	"github.com/shashankb2004/edublog/internal/utils"
)

func blogIdFromRequest(r *http.Request) (domain.BlogId, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (h *Handler) GetBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blog.List()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blogs)
}

func (h *Handler) GetUserBlogs(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.GetUserIdFromContext(r)
	if !ok {
		utils.WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	blogs, err := h.blog.ListByAuthor(uid)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blogs)
}

func (h *Handler) GetBlog(w http.ResponseWriter, r *http.Request) {
	id, err := blogIdFromRequest(r)
	if err != nil {
		utils.WriteJSONError(w, "Blog not found", http.StatusNotFound)
		return
	}

	blog, err := h.blog.Get(id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	// The detail view additionally carries the content rendered to safe HTML
	type blogDetail struct {
		domain.Blog
		ContentHtml string `json:"contentHtml"`
	}
	writeJSON(w, http.StatusOK, blogDetail{Blog: blog, ContentHtml: h.renderer.Render(blog.Content)})
}

func (h *Handler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.GetUserIdFromContext(r)
	if !ok {
		utils.WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	type bodyJson struct {
		Title    string `validate:"required" json:"title"`
		Category string `validate:"required" json:"category"`
		Content  string `validate:"required" json:"content"`
		Excerpt  string `json:"excerpt"`
		Image    string `validate:"required" json:"image"`
	}
	var body bodyJson
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	blog, err := h.blog.Create(uid, body.Title, body.Category, body.Content, body.Excerpt, body.Image)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, blog)
}

func (h *Handler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.GetUserIdFromContext(r)
	if !ok {
		utils.WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := blogIdFromRequest(r)
	if err != nil {
		utils.WriteJSONError(w, "Blog not found", http.StatusNotFound)
		return
	}

	// Any subset of fields may be supplied; absent fields keep their value
	type bodyJson struct {
		Title    *string `json:"title"`
		Category *string `json:"category"`
		Content  *string `json:"content"`
		Excerpt  *string `json:"excerpt"`
		Image    *string `json:"image"`
	}
	var body bodyJson
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	blog, err := h.blog.Update(uid, id, domain.BlogUpdate{
		Title:    body.Title,
		Category: body.Category,
		Content:  body.Content,
		Excerpt:  body.Excerpt,
		Image:    body.Image,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blog)
}

func (h *Handler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.GetUserIdFromContext(r)
	if !ok {
		utils.WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := blogIdFromRequest(r)
	if err != nil {
		utils.WriteJSONError(w, "Blog not found", http.StatusNotFound)
		return
	}

	if err := h.blog.Delete(uid, id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Blog deleted successfully"})
}
