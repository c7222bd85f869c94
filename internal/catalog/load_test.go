package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/epsync/internal/catalog"
	"github.com/vmunix/epsync/internal/catalog/mocks"
)

func TestLoad_PagesUntilEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockReader(ctrl)

	page1 := make([]catalog.Series, catalog.SeriesPageSize)
	for i := range page1 {
		page1[i] = catalog.Series{ID: int64(i + 1), Title: "Show"}
	}
	gomock.InOrder(
		r.EXPECT().ListSeries(gomock.Any(), catalog.SeriesPageSize, 0).Return(page1, nil),
		r.EXPECT().ListSeries(gomock.Any(), catalog.SeriesPageSize, catalog.SeriesPageSize).
			Return([]catalog.Series{{ID: 5000, Title: "Last"}}, nil),
		r.EXPECT().ListSeries(gomock.Any(), catalog.SeriesPageSize, 2*catalog.SeriesPageSize).Return(nil, nil),
	)
	gomock.InOrder(
		r.EXPECT().ListSeasons(gomock.Any(), catalog.SeasonPageSize, 0).
			Return([]catalog.Season{{ID: 10, SeriesID: 1, Number: 1}}, nil),
		r.EXPECT().ListSeasons(gomock.Any(), catalog.SeasonPageSize, catalog.SeasonPageSize).Return(nil, nil),
	)
	gomock.InOrder(
		r.EXPECT().ListEpisodes(gomock.Any(), catalog.EpisodePageSize, 0).
			Return([]catalog.Episode{{ID: 100, SeasonID: 10, SeriesID: 1, Number: 1}}, nil),
		r.EXPECT().ListEpisodes(gomock.Any(), catalog.EpisodePageSize, catalog.EpisodePageSize).
			Return([]catalog.Episode{}, nil),
	)

	snap, err := catalog.Load(context.Background(), r)
	require.NoError(t, err)
	assert.Len(t, snap.Series, catalog.SeriesPageSize+1)
	assert.Equal(t, int64(5000), snap.Series[len(snap.Series)-1].ID)
	assert.Len(t, snap.Seasons, 1)
	assert.Len(t, snap.Episodes, 1)
}

func TestLoad_ReadErrorAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockReader(ctrl)
	boom := errors.New("connection refused")

	r.EXPECT().ListSeries(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]catalog.Series{{ID: 1, Title: "Show"}}, nil).AnyTimes()
	r.EXPECT().ListSeasons(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, boom).AnyTimes()
	r.EXPECT().ListEpisodes(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _, _ int) ([]catalog.Episode, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}).AnyTimes()

	snap, err := catalog.Load(context.Background(), r)
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "load seasons")
}
