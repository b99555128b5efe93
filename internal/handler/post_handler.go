package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"socialfeed/internal/models"
	"socialfeed/internal/service"
	"socialfeed/internal/storage"
)

type PostsResponse struct {
	Posts []models.Post `json:"posts"`
}

type LikeResponse struct {
	PostID    int64 `json:"id"`
	LikeCount int64 `json:"likeCount"`
}

func writePosts(w http.ResponseWriter, posts []models.Post) {
	if posts == nil {
		posts = []models.Post{}
	}
	writeSuccess(w, PostsResponse{Posts: posts}, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req service.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат JSON", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), caller(r), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) UploadMedia(w http.ResponseWriter, r *http.Request) {
	file, header, ok := h.formFile(w, r, "media")
	if !ok {
		return
	}
	defer file.Close()

	isVideo, _ := strconv.ParseBool(r.FormValue("isVideo"))

	post, err := h.PostService.UploadMedia(r.Context(), caller(r), service.UploadMediaRequest{
		Caption:     r.FormValue("caption"),
		ContentType: models.ContentType(r.FormValue("contentType")),
		IsVideo:     isVideo,
		FileName:    header.Filename,
		Body:        file,
		Size:        header.Size,
		Progress:    logProgress(header.Filename),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) GetAllPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.GetAllPosts(r.Context(), caller(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writePosts(w, posts)
}

func (h *Handlers) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	author, ok := principalFromRequest(r)
	if !ok {
		WriteError(w, "Неверный principal", http.StatusBadRequest)
		return
	}

	posts, err := h.PostService.GetUserPosts(r.Context(), caller(r), author)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writePosts(w, posts)
}

func (h *Handlers) GetShortVideos(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.GetShortVideos(r.Context(), caller(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writePosts(w, posts)
}

func (h *Handlers) GetTrendingPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.GetTrendingPosts(r.Context(), caller(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writePosts(w, posts)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDFromRequest(r)
	if !ok {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	if err := h.PostService.DeletePost(r.Context(), caller(r), postID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "Пост успешно удален"}, http.StatusOK)
}

func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDFromRequest(r)
	if !ok {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	count, err := h.PostService.LikePost(r.Context(), caller(r), postID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, LikeResponse{PostID: postID, LikeCount: count}, http.StatusOK)
}

// formFile limits the request body to the configured upload size and
// returns the named multipart file.
func (h *Handlers) formFile(w http.ResponseWriter, r *http.Request, field string) (multipart.File, *multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, fmt.Sprintf("Файл слишком большой (макс. %d MB)",
				h.Cfg.MaxUploadSize/(1024*1024)), http.StatusRequestEntityTooLarge)
		} else {
			WriteError(w, "Ошибка при обработке файла", http.StatusBadRequest)
		}
		return nil, nil, false
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		WriteError(w, "Не удалось получить файл", http.StatusBadRequest)
		return nil, nil, false
	}

	return file, header, true
}

// logProgress logs every passed quarter of an upload.
func logProgress(fileName string) storage.ProgressFunc {
	logged := 0
	return func(percentage int) {
		if quarter := percentage / 25; quarter > logged {
			logged = quarter
			log.Printf("Загрузка %s: %d%%", fileName, percentage)
		}
	}
}
