// Package directory owns the contact records & their photos.
package directory

import (
	"context"
	"errors"
	"math"

	"github.com/Daskott/rolodex/server/logger"
	"github.com/Daskott/rolodex/server/models"
	"github.com/Daskott/rolodex/server/photostore"
	pkgErrors "github.com/pkg/errors"
)

var (
	ErrNotFound    = errors.New("contact not found")
	ErrInvalidPage = errors.New("page must be >= 0 and size must be >= 1")
)

var logg = logger.NewLogger("directory")

type Directory struct {
	photos *photostore.PhotoStore
}

func New(photos *photostore.PhotoStore) *Directory {
	return &Directory{photos: photos}
}

// Create persists contact under a freshly generated id
func (d *Directory) Create(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	contact.ID = ""

	err := models.CreateContact(ctx, contact)
	if err != nil {
		return nil, pkgErrors.Wrap(err, "unable to create contact")
	}

	return contact, nil
}

// List returns the zero-indexed 'page' of contacts sorted by name.
// 'size' is capped at models.MAX_PAGE_SIZE and the capped value is echoed in the paging.
func (d *Directory) List(ctx context.Context, page, size int) (*models.ContactPage, error) {
	if page < 0 || size < 1 {
		return nil, ErrInvalidPage
	}

	if size > models.MAX_PAGE_SIZE {
		size = models.MAX_PAGE_SIZE
	}

	// page*size must fit the row offset
	if page > math.MaxInt/size {
		return nil, ErrInvalidPage
	}

	return models.FetchContacts(ctx, page, size)
}

func (d *Directory) Get(ctx context.Context, id string) (*models.Contact, error) {
	contact, err := models.FindContact(ctx, id)
	if errors.Is(err, models.ErrRecordNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, pkgErrors.Wrapf(err, "unable to find contact %v", id)
	}

	return contact, nil
}

// Delete removes the contact record. Its photo, if any, is left in the photo store.
func (d *Directory) Delete(ctx context.Context, id string) error {
	err := models.DeleteContact(ctx, id)
	if errors.Is(err, models.ErrRecordNotFound) {
		return ErrNotFound
	}

	if err != nil {
		return pkgErrors.Wrapf(err, "unable to delete contact %v", id)
	}

	return nil
}

// UpdatePhoto stores photo for contact 'id' & points the contact's photo url at it.
//
// The photo write & record update are not atomic: if the update fails after the
// write succeeded, the new photo stays in the store without being referenced.
func (d *Directory) UpdatePhoto(ctx context.Context, baseURL, id string, photo []byte, originalFilename string) (string, error) {
	contact, err := d.Get(ctx, id)
	if err != nil {
		return "", err
	}

	photoURL, err := d.photos.Store(ctx, baseURL, contact.ID, photo, originalFilename)
	if err != nil {
		return "", err
	}

	err = contact.UpdatePhotoURL(ctx, photoURL)
	if errors.Is(err, models.ErrRecordNotFound) {
		logg.Warnf("Contact %v was removed while its photo %v was being stored", id, photoURL)
		return "", ErrNotFound
	}

	if err != nil {
		logg.Errorf("Photo %v stored but contact %v was not updated: %v", photoURL, id, err)
		return "", pkgErrors.Wrapf(err, "unable to update photo url for contact %v", id)
	}

	return photoURL, nil
}
