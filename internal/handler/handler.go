package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"socialfeed/internal/config"
	"socialfeed/internal/identity"
	"socialfeed/internal/metrics"
	"socialfeed/internal/models"
	"socialfeed/internal/service"
)

type Handlers struct {
	PostService    service.PostService
	CommentService service.CommentService
	ProfileService service.ProfileService
	AdminService   service.AdminService
	MessageService service.MessageService
	StatsService   service.StatsService
	Metrics        *metrics.Recorder
	Cfg            *config.Config
}

func NewHandlers(services *service.Service, cfg *config.Config, recorder *metrics.Recorder) *Handlers {
	return &Handlers{
		PostService:    services.Post,
		CommentService: services.Comment,
		ProfileService: services.Profile,
		AdminService:   services.Admin,
		MessageService: services.Message,
		StatsService:   services.Stats,
		Metrics:        recorder,
		Cfg:            cfg,
	}
}

// Router registers every route. Static paths are added before the
// parameterized ones so "/api/posts/trending" never matches "{id}".
func (h *Handlers) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", HomeHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/stats", h.StatsHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(requireCaller)

	api.HandleFunc("/posts", h.CreatePost).Methods(http.MethodPost)
	api.HandleFunc("/posts", h.GetAllPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/media", h.UploadMedia).Methods(http.MethodPost)
	api.HandleFunc("/posts/trending", h.GetTrendingPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/shorts", h.GetShortVideos).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", h.DeletePost).Methods(http.MethodDelete)
	api.HandleFunc("/posts/{id}/like", h.LikePost).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id}/comments", h.AddComment).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id}/comments", h.GetComments).Methods(http.MethodGet)

	api.HandleFunc("/users/{principal}/posts", h.GetUserPosts).Methods(http.MethodGet)
	api.HandleFunc("/users/{principal}/profile", h.GetUserProfile).Methods(http.MethodGet)

	api.HandleFunc("/me/profile", h.GetCallerUserProfile).Methods(http.MethodGet)
	api.HandleFunc("/me/profile", h.CreateOrUpdateProfile).Methods(http.MethodPut)
	api.HandleFunc("/me/profile", h.SaveCallerUserProfile).Methods(http.MethodPost)
	api.HandleFunc("/me/profile/picture", h.UploadProfilePicture).Methods(http.MethodPut)

	api.HandleFunc("/admins", h.AddAdmin).Methods(http.MethodPost)
	api.HandleFunc("/admins/me", h.IsCallerAdmin).Methods(http.MethodGet)

	api.HandleFunc("/messages", h.SendMessage).Methods(http.MethodPost)
	api.HandleFunc("/messages/{principal}", h.GetMessages).Methods(http.MethodGet)

	// a subrouter answers its own mismatches, the root handlers never see them
	for _, router := range []*mux.Router{r, api} {
		router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
		router.NotFoundHandler = http.HandlerFunc(notFound)
	}

	return r
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, "Неверный URL", http.StatusNotFound)
}

// requireCaller rejects anonymous requests before any path or body parsing.
func requireCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if caller(r).IsAnonymous() {
			WriteError(w, models.ErrUnauthorized.Error(), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func caller(r *http.Request) identity.Principal {
	return identity.FromContext(r.Context())
}

func postIDFromRequest(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

func principalFromRequest(r *http.Request) (identity.Principal, bool) {
	p, err := identity.Parse(mux.Vars(r)["principal"])
	if err != nil {
		return "", false
	}
	return p, true
}
