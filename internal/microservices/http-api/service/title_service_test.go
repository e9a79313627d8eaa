package service

import (
	"context"
	"testing"
	"time"

	"yamdb/internal/apperr"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestRoundRating(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want *float64
	}{
		{"no reviews", nil, nil},
		{"mean of 7 9 10", floatPtr(26.0 / 3.0), floatPtr(8.67)},
		{"exact", floatPtr(5), floatPtr(5)},
		{"rounds down", floatPtr(7.3333333), floatPtr(7.33)},
		{"half rounds up", floatPtr(6.125), floatPtr(6.13)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RoundRating(tc.in)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tc.want, *got, 1e-9)
		})
	}
}

type titleFixture struct {
	svc        *titleService
	titles     *MockTitleRepository
	categories *MockCategoryRepository
	genres     *MockGenreRepository
}

func newTitleFixture() titleFixture {
	f := titleFixture{
		titles:     new(MockTitleRepository),
		categories: new(MockCategoryRepository),
		genres:     new(MockGenreRepository),
	}
	f.svc = NewTitleService(f.titles, f.categories, f.genres).(*titleService)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func TestGetTitleRoundsRating(t *testing.T) {
	f := newTitleFixture()
	f.titles.On("GetByID", mock.Anything, int64(1)).
		Return(&models.Title{ID: 1, Name: "Solaris", Year: 1972, Rating: floatPtr(26.0 / 3.0)}, nil)

	title, err := f.svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, title.Rating)
	assert.InDelta(t, 8.67, *title.Rating, 1e-9)
}

func TestListTitlesRoundsEveryRating(t *testing.T) {
	f := newTitleFixture()
	filter := repository.TitleFilter{GenreSlug: "drama"}
	f.titles.On("List", mock.Anything, filter, 1, 20).Return([]models.Title{
		{ID: 2, Rating: floatPtr(9.999)},
		{ID: 1},
	}, int64(2), nil)

	titles, total, err := f.svc.List(context.Background(), filter, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.InDelta(t, 10.0, *titles[0].Rating, 1e-9)
	assert.Nil(t, titles[1].Rating)
}

func TestCreateTitle(t *testing.T) {
	f := newTitleFixture()
	ctx := context.Background()
	genres := []models.Genre{{ID: 1, Name: "Drama", Slug: "drama"}, {ID: 2, Name: "Sci-Fi", Slug: "sci-fi"}}

	f.categories.On("FindBySlug", mock.Anything, "films").Return(&models.Category{ID: 7, Name: "Films", Slug: "films"}, nil)
	f.genres.On("FindBySlugs", mock.Anything, []string{"drama", "sci-fi"}).Return(genres, nil)
	f.titles.On("Create", mock.Anything, mock.MatchedBy(func(title *models.Title) bool {
		return title.Name == "Solaris" && title.CategoryID != nil && *title.CategoryID == 7
	}), genres).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Title).ID = 11
	})
	f.titles.On("GetByID", mock.Anything, int64(11)).Return(&models.Title{ID: 11, Name: "Solaris", Year: 1972, Genres: genres}, nil)

	title, err := f.svc.Create(ctx, dto.CreateTitleRequest{
		Name:     "Solaris",
		Year:     intPtr(1972),
		Genre:    []string{"drama", "sci-fi", "drama"},
		Category: strPtr("films"),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 11, title.ID)
	assert.Nil(t, title.Rating)
	f.titles.AssertExpectations(t)
}

func TestCreateTitleValidation(t *testing.T) {
	tests := []struct {
		name  string
		req   dto.CreateTitleRequest
		field string
	}{
		{"missing year", dto.CreateTitleRequest{Name: "X", Genre: []string{"drama"}}, "year"},
		{"future year", dto.CreateTitleRequest{Name: "X", Year: intPtr(fixedNow.Year() + 1), Genre: []string{"drama"}}, "year"},
		{"blank name", dto.CreateTitleRequest{Name: " ", Year: intPtr(2000), Genre: []string{"drama"}}, "name"},
		{"no genres", dto.CreateTitleRequest{Name: "X", Year: intPtr(2000)}, "genre"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newTitleFixture()
			_, err := f.svc.Create(context.Background(), tc.req)
			var appErr *apperr.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperr.KindValidation, appErr.Kind)
			assert.Equal(t, tc.field, appErr.Field)
			f.titles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCreateTitleCurrentYearAllowed(t *testing.T) {
	f := newTitleFixture()
	genres := []models.Genre{{ID: 1, Slug: "drama"}}
	f.genres.On("FindBySlugs", mock.Anything, []string{"drama"}).Return(genres, nil)
	f.titles.On("Create", mock.Anything, mock.Anything, genres).Return(nil)
	f.titles.On("GetByID", mock.Anything, int64(0)).Return(&models.Title{Name: "Now"}, nil)

	_, err := f.svc.Create(context.Background(), dto.CreateTitleRequest{Name: "Now", Year: intPtr(fixedNow.Year()), Genre: []string{"drama"}})
	assert.NoError(t, err)
}

func TestCreateTitleUnknownReferences(t *testing.T) {
	t.Run("category", func(t *testing.T) {
		f := newTitleFixture()
		f.categories.On("FindBySlug", mock.Anything, "nope").Return(nil, repository.ErrCategoryNotFound)

		_, err := f.svc.Create(context.Background(), dto.CreateTitleRequest{
			Name: "X", Year: intPtr(2000), Genre: []string{"drama"}, Category: strPtr("nope"),
		})
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperr.KindValidation, appErr.Kind)
		assert.Equal(t, "category", appErr.Field)
	})

	t.Run("genre", func(t *testing.T) {
		f := newTitleFixture()
		f.genres.On("FindBySlugs", mock.Anything, []string{"drama", "ghost"}).
			Return([]models.Genre{{ID: 1, Slug: "drama"}}, nil)

		_, err := f.svc.Create(context.Background(), dto.CreateTitleRequest{
			Name: "X", Year: intPtr(2000), Genre: []string{"drama", "ghost"},
		})
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "genre", appErr.Field)
		assert.Contains(t, appErr.Message, `"ghost"`)
	})
}

func TestUpdateTitleKeepsGenresWhenOmitted(t *testing.T) {
	f := newTitleFixture()
	existing := &models.Title{ID: 3, Name: "Old", Year: 1990}
	f.titles.On("GetByID", mock.Anything, int64(3)).Return(existing, nil)
	f.titles.On("Update", mock.Anything, mock.MatchedBy(func(title *models.Title) bool {
		return title.Name == "New" && title.Year == 1990
	}), []models.Genre(nil)).Return(nil)

	_, err := f.svc.Update(context.Background(), 3, dto.UpdateTitleRequest{Name: strPtr("New")})
	require.NoError(t, err)
	f.titles.AssertExpectations(t)
}

func TestUpdateTitleRejectsEmptyGenreList(t *testing.T) {
	f := newTitleFixture()
	f.titles.On("GetByID", mock.Anything, int64(3)).Return(&models.Title{ID: 3, Name: "Old", Year: 1990}, nil)

	_, err := f.svc.Update(context.Background(), 3, dto.UpdateTitleRequest{Genre: []string{}})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	f.titles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteTitleNotFound(t *testing.T) {
	f := newTitleFixture()
	f.titles.On("Delete", mock.Anything, int64(9)).Return(repository.ErrTitleNotFound)

	assert.ErrorIs(t, f.svc.Delete(context.Background(), 9), repository.ErrTitleNotFound)
}
