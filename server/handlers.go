package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/Daskott/rolodex/server/directory"
	"github.com/Daskott/rolodex/server/models"
	"github.com/Daskott/rolodex/server/photostore"
	"github.com/gorilla/mux"
)

type ResponsePayload struct {
	Errors  []string    `json:"errors"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

type handlers struct {
	contacts  *directory.Directory
	photos    *photostore.PhotoStore
	publicURL string
}

func (h *handlers) createContact(rw http.ResponseWriter, r *http.Request) {
	data := models.Contact{}

	err := json.NewDecoder(r.Body).Decode(&data)
	if err != nil {
		writeErrors(rw, http.StatusBadRequest, fmt.Sprintf("invalid contact: %v", err))
		return
	}

	contact, err := h.contacts.Create(r.Context(), &data)
	if err != nil {
		writeErrors(rw, http.StatusInternalServerError, err.Error())
		return
	}

	rw.Header().Set("Location", fmt.Sprintf("/contacts/%v", contact.ID))
	writeJSON(rw, contact, http.StatusCreated)
}

func (h *handlers) listContacts(rw http.ResponseWriter, r *http.Request) {
	page, err := intQueryParam(r, "page", 0)
	if err != nil {
		writeErrors(rw, http.StatusBadRequest, "'page' must be an integer")
		return
	}

	size, err := intQueryParam(r, "size", models.DEFAULT_PAGE_SIZE)
	if err != nil {
		writeErrors(rw, http.StatusBadRequest, "'size' must be an integer")
		return
	}

	contactPage, err := h.contacts.List(r.Context(), page, size)
	if errors.Is(err, directory.ErrInvalidPage) {
		writeErrors(rw, http.StatusBadRequest, err.Error())
		return
	}

	if err != nil {
		writeErrors(rw, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(rw, contactPage, http.StatusOK)
}

func (h *handlers) findContact(rw http.ResponseWriter, r *http.Request) {
	contact, err := h.contacts.Get(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, directory.ErrNotFound) {
		writeErrors(rw, http.StatusNotFound, err.Error())
		return
	}

	if err != nil {
		writeErrors(rw, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(rw, contact, http.StatusOK)
}

func (h *handlers) deleteContact(rw http.ResponseWriter, r *http.Request) {
	err := h.contacts.Delete(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, directory.ErrNotFound) {
		writeErrors(rw, http.StatusNotFound, err.Error())
		return
	}

	if err != nil {
		writeErrors(rw, http.StatusInternalServerError, err.Error())
		return
	}

	rw.WriteHeader(http.StatusNoContent)
}

func (h *handlers) uploadPhoto(rw http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeErrors(rw, http.StatusBadRequest, "query param 'id' is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeErrors(rw, http.StatusBadRequest, fmt.Sprintf("multipart field 'file' is required: %v", err))
		return
	}
	defer file.Close()

	photo, err := ioutil.ReadAll(file)
	if err != nil {
		writeErrors(rw, http.StatusBadRequest, fmt.Sprintf("unable to read 'file': %v", err))
		return
	}

	photoURL, err := h.contacts.UpdatePhoto(r.Context(), h.baseURL(r), id, photo, header.Filename)
	if errors.Is(err, directory.ErrNotFound) {
		writeErrors(rw, http.StatusNotFound, err.Error())
		return
	}

	if err != nil {
		writeErrors(rw, http.StatusInternalServerError, err.Error())
		return
	}

	rw.Header().Set("Content-Type", "text/plain; charset=utf-8")
	rw.WriteHeader(http.StatusOK)
	rw.Write([]byte(photoURL))
}

func (h *handlers) getPhoto(rw http.ResponseWriter, r *http.Request) {
	filename := mux.Vars(r)["filename"]

	photo, err := h.photos.Retrieve(r.Context(), filename)
	if errors.Is(err, photostore.ErrNotFound) {
		writeErrors(rw, http.StatusNotFound, err.Error())
		return
	}

	if err != nil {
		writeErrors(rw, http.StatusInternalServerError, err.Error())
		return
	}

	rw.Header().Set("Content-Type", photostore.ContentTypeOf(filename))
	rw.WriteHeader(http.StatusOK)
	rw.Write(photo)
}

func (h *handlers) notFound(rw http.ResponseWriter, r *http.Request) {
	writeErrors(rw, http.StatusNotFound, fmt.Sprintf("no route for %v %v", r.Method, r.URL.Path))
}

func (h *handlers) baseURL(r *http.Request) string {
	if h.publicURL != "" {
		return h.publicURL
	}

	return requestBaseURL(r)
}
