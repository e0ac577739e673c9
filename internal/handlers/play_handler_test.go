package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/contesthq/contest-backend/internal/models"
	"github.com/contesthq/contest-backend/internal/repositories/memory"
	"github.com/contesthq/contest-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fixedDecider always answers the same way, standing in for the engine
type fixedDecider struct {
	win bool
}

func (d *fixedDecider) Decide(_ context.Context, _ *models.Prize, _ time.Time) (bool, error) {
	return d.win, nil
}

type playTestEnv struct {
	router  *gin.Engine
	winRepo *memory.WinRepository
	prize   *models.Prize
}

func newPlayTestEnv(t *testing.T, win bool, contestStart, contestEnd time.Time) *playTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	contestRepo := memory.NewContestRepository()
	prizeRepo := memory.NewPrizeRepository()
	winRepo := memory.NewWinRepository()

	contest := &models.Contest{
		Code:      "summer",
		Name:      "Summer Contest",
		StartDate: contestStart,
		EndDate:   contestEnd,
	}
	require.NoError(t, contestRepo.Create(ctx, contest))

	prize := &models.Prize{
		Code:      "gold",
		Name:      "Gold Prize",
		PerDay:    10,
		ContestID: contest.ID,
	}
	require.NoError(t, prizeRepo.Create(ctx, prize))

	playService := services.NewPlayService(contestRepo, prizeRepo, winRepo, &fixedDecider{win: win}, 3)

	router := gin.New()
	router.GET("/play", NewPlayHandler(playService).Play)
	return &playTestEnv{router: router, winRepo: winRepo, prize: prize}
}

func (e *playTestEnv) get(url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	e.router.ServeHTTP(w, req)
	return w
}

func activeWindow() (time.Time, time.Time) {
	now := time.Now()
	return now.AddDate(0, 0, -1), now.AddDate(0, 0, 1)
}

func TestPlayMissingContestCode(t *testing.T) {
	start, end := activeWindow()
	env := newPlayTestEnv(t, true, start, end)

	w := env.get("/play")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlayUnknownContest(t *testing.T) {
	start, end := activeWindow()
	env := newPlayTestEnv(t, true, start, end)

	w := env.get("/play?contest=missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlayInactiveContest(t *testing.T) {
	now := time.Now()
	env := newPlayTestEnv(t, true, now.AddDate(0, 0, -10), now.AddDate(0, 0, -2))

	w := env.get("/play?contest=summer")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPlayUserLimitStatus(t *testing.T) {
	start, end := activeWindow()
	env := newPlayTestEnv(t, true, start, end)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, env.winRepo.Create(ctx, &models.WinRecord{
			PrizeID:   primitive.NewObjectID(),
			UserID:    "alice",
			Timestamp: time.Now(),
		}))
	}

	w := env.get("/play?contest=summer&user=alice")
	assert.Equal(t, 420, w.Code)
}

func TestPlayWinResponse(t *testing.T) {
	start, end := activeWindow()
	env := newPlayTestEnv(t, true, start, end)

	w := env.get("/play?contest=summer&user=alice")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Win     bool `json:"win"`
		Prize   *struct {
			Code string `json:"code"`
			Name string `json:"name"`
		} `json:"prize"`
		Contest   string `json:"contest"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.True(t, body.Win)
	require.NotNil(t, body.Prize)
	assert.Equal(t, "gold", body.Prize.Code)
	assert.Equal(t, "Gold Prize", body.Prize.Name)
	assert.Equal(t, "summer", body.Contest)
	_, err := time.Parse("2006-01-02 15:04:05", body.Timestamp)
	assert.NoError(t, err)

	records, err := env.winRepo.FindByPrizeAndDate(context.Background(), env.prize.ID, time.Now())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestPlayLossResponse(t *testing.T) {
	start, end := activeWindow()
	env := newPlayTestEnv(t, false, start, end)

	w := env.get("/play?contest=summer")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Win   bool            `json:"win"`
		Prize json.RawMessage `json:"prize"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Win)
	assert.Equal(t, "null", string(body.Prize))
}
