package repository

import (
	"errors"
	"strings"

	"yamdb/internal/apperr"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

var (
	ErrUserNotFound     = apperr.NotFound("user not found")
	ErrCategoryNotFound = apperr.NotFound("category not found")
	ErrGenreNotFound    = apperr.NotFound("genre not found")
	ErrTitleNotFound    = apperr.NotFound("title not found")
	ErrReviewNotFound   = apperr.NotFound("review not found")
	ErrCommentNotFound  = apperr.NotFound("comment not found")

	ErrAlreadyReviewed = apperr.Conflict("", "you have already reviewed this title")
	ErrUsernameTaken   = apperr.Conflict("username", "a user with that username already exists")
	ErrEmailTaken      = apperr.Conflict("email", "a user with that email already exists")
	ErrCategoryExists  = apperr.Conflict("slug", "a category with this slug already exists")
	ErrGenreExists     = apperr.Conflict("slug", "a genre with this slug already exists")
)

// unique constraint (index) name -> domain error
var uniqueViolations = map[string]error{
	"uq_review_author_title": ErrAlreadyReviewed,
	"uq_users_username":      ErrUsernameTaken,
	"uq_users_email":         ErrEmailTaken,
	"uq_categories_slug":     ErrCategoryExists,
	"uq_genres_slug":         ErrGenreExists,
}

// translateError maps store errors onto the application taxonomy.
// notFound is returned for gorm.ErrRecordNotFound; unique violations become
// the matching Conflict error; anything else is returned unchanged.
func translateError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil {
		return notFound
	}
	if pgErr, ok := uniqueViolation(err); ok {
		if mapped, found := uniqueViolations[pgErr.ConstraintName]; found {
			return mapped
		}
		return apperr.Conflict("", "record already exists")
	}
	return err
}

func uniqueViolation(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr, true
	}
	return nil, false
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern for a literal substring search.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// offset converts a 1-based page into a row offset.
func offset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
