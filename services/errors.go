package services

import (
	"errors"

	"github.com/MrTch0o/APPUAIFOOD-sub000/pkg/apperr"
	"gorm.io/gorm"
)

// notFound turns a missing-row error into an apperr.NotFound with msg.
func notFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(msg)
	}
	return err
}
