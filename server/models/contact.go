package models

import (
	"context"

	"github.com/pkg/errors"
)

type Contact struct {
	BaseModel
	Name     string `json:"name,omitempty" gorm:"index"`
	Email    string `json:"email,omitempty"`
	Title    string `json:"title,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Status   string `json:"status,omitempty"`
	PhotoURL string `json:"photoURL,omitempty"`
}

type ContactPage struct {
	Content []Contact `json:"content"`
	Paging  *Paging   `json:"paging"`
}

// UpdatePhotoURL sets & persists the contact's photo url
func (contact *Contact) UpdatePhotoURL(ctx context.Context, photoURL string) error {
	contact.PhotoURL = photoURL

	res := db.WithContext(ctx).Model(contact).Update("photo_url", photoURL)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func CreateContact(ctx context.Context, contact *Contact) error {
	return db.WithContext(ctx).Create(contact).Error
}

// FindContact returns the contact with the given id or ErrRecordNotFound
func FindContact(ctx context.Context, id string) (*Contact, error) {
	contact := Contact{}
	err := db.WithContext(ctx).First(&contact, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	return &contact, nil
}

// FetchContacts returns the zero-indexed 'page' of contacts sorted by name
func FetchContacts(ctx context.Context, page, pageSize int) (*ContactPage, error) {
	var total int64
	contacts := []Contact{}

	err := db.WithContext(ctx).Model(&Contact{}).Count(&total).Error
	if err != nil {
		return nil, errors.Wrap(err, "unable to count contacts")
	}

	err = db.WithContext(ctx).Scopes(paginate(page, pageSize)).
		Order("name asc").Order("id asc").Find(&contacts).Error
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch contacts")
	}

	if contacts == nil {
		contacts = []Contact{}
	}

	return &ContactPage{
		Content: contacts,
		Paging:  newPaging(int64(page), int64(pageSize), total),
	}, nil
}

func DeleteContact(ctx context.Context, id string) error {
	res := db.WithContext(ctx).Delete(&Contact{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}
