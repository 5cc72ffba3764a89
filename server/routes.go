package server

import (
	"net/http"

	"github.com/Daskott/rolodex/server/directory"
	"github.com/Daskott/rolodex/server/photostore"
	"github.com/gorilla/mux"
)

type routerOptions struct {
	// publicURL, when set, is used as the base of photo urls instead of the request's host
	publicURL      string
	maxUploadBytes int64
}

func newRouter(contacts *directory.Directory, photos *photostore.PhotoStore, opts routerOptions) *mux.Router {
	h := &handlers{contacts: contacts, photos: photos, publicURL: opts.publicURL}

	router := mux.NewRouter()
	router.Use(loggingMiddleware)
	router.NotFoundHandler = loggingMiddleware(http.HandlerFunc(h.notFound))

	contactsRouter := router.PathPrefix("/contacts").Subrouter()
	contactsRouter.HandleFunc("", h.createContact).Methods("POST")
	contactsRouter.HandleFunc("/", h.createContact).Methods("POST")
	contactsRouter.HandleFunc("", h.listContacts).Methods("GET")
	contactsRouter.HandleFunc("/", h.listContacts).Methods("GET")

	contactsRouter.Handle("/photo", uploadLimitMiddleware(opts.maxUploadBytes)(http.HandlerFunc(h.uploadPhoto))).Methods("PUT")

	// Photo urls are built with IMAGE_PATH_PREFIX ('/images/'); both paths serve the same file
	contactsRouter.HandleFunc("/image/{filename}", h.getPhoto).Methods("GET")
	contactsRouter.HandleFunc("/images/{filename}", h.getPhoto).Methods("GET")

	contactsRouter.HandleFunc("/{id}", h.findContact).Methods("GET")
	contactsRouter.HandleFunc("/{id}", h.deleteContact).Methods("DELETE")

	return router
}
