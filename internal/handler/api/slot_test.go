//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"ellevate-booking/internal/domain/user"
	"ellevate-booking/internal/handler/api"
	resdto "ellevate-booking/internal/handler/dto/response"
	"ellevate-booking/internal/pkg/errs"
	"ellevate-booking/internal/usecase/commands"
	"ellevate-booking/internal/usecase/queries"
	"ellevate-booking/internal/usecase/shared"
	"ellevate-booking/tests/common/builder"
	"ellevate-booking/tests/common/httptest"
	commandsmock "ellevate-booking/tests/mock/commands"
	queriesmock "ellevate-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SlotHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockScheduleCommands
	mockQueries  *queriesmock.MockSlotQueries
	handler      *api.SlotHandler
	actorID      uuid.UUID
	actorRole    user.Role
}

func (s *SlotHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockScheduleCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSlotQueries(s.mockCtrl)
	s.handler = api.NewSlotHandler(s.mockCommands, s.mockQueries)
	s.actorID = uuid.New()
	s.actorRole = user.RoleUser

	// Stands in for RequireAuth.
	authed := func(c *gin.Context) {
		c.Set("user_id", s.actorID)
		c.Set("user_role", s.actorRole)
	}

	group := s.router.Group("/slots", authed)
	group.GET("", s.handler.GetSlots)
	group.GET("/:id", s.handler.GetSlot)
	group.POST("", s.handler.GenerateSchedule)
}

func (s *SlotHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSlotHandlerSuite(t *testing.T) {
	suite.Run(t, new(SlotHandlerTestSuite))
}

func (s *SlotHandlerTestSuite) actor() shared.Actor {
	return shared.Actor{UserID: s.actorID, Role: s.actorRole}
}

func (s *SlotHandlerTestSuite) TestGetSlots() {
	s.Run("success: lists the current week by default", func() {
		views := []*queries.SlotView{
			builder.NewSlotBuilder().BuildView(),
			builder.NewSlotBuilder().WithTimes("20:30", "21:30").BuildView(),
		}

		s.mockQueries.EXPECT().ListSlots(gomock.Any(), s.actor(), queries.SlotListParams{}).
			Return(views, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/slots", nil, "")

		var response []resdto.SlotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
	})

	s.Run("success: week offset is forwarded", func() {
		s.mockQueries.EXPECT().ListSlots(gomock.Any(), s.actor(), queries.SlotListParams{WeekOffset: 2}).
			Return(nil, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/slots?week=2", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: a single day can be selected", func() {
		s.mockQueries.EXPECT().ListSlots(gomock.Any(), s.actor(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ shared.Actor, params queries.SlotListParams) ([]*queries.SlotView, error) {
				s.Require().NotNil(params.Date)
				s.Equal(time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), *params.Date)
				return nil, nil
			},
		)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/slots?date=2026-09-02", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on a malformed date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/slots?date=02-09-2026", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 on a week offset out of range", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/slots?week=99", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *SlotHandlerTestSuite) TestGetSlot() {
	s.Run("success: returns the slot with availability", func() {
		view := builder.NewSlotBuilder().WithActiveCount(5).BuildView()

		s.mockQueries.EXPECT().GetSlot(gomock.Any(), s.actor(), view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/slots/"+view.ID.String(), nil, "")

		var response resdto.SlotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(int32(5), response.CurrentCount)
		s.Equal(int32(3), response.AvailableSpots)
		s.False(response.IsFull)
	})

	s.Run("error: 400 on a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/slots/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid slot ID")
	})

	s.Run("error: 404 on an unknown slot", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetSlot(gomock.Any(), s.actor(), id).Return(nil, errs.ErrSlotNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/slots/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Training slot not found")
	})
}

func (s *SlotHandlerTestSuite) TestGenerateSchedule() {
	url := "/slots"

	s.Run("success: returns 201 with the created count", func() {
		s.actorRole = user.RoleAdmin
		defer func() { s.actorRole = user.RoleUser }()

		s.mockCommands.EXPECT().GenerateWeek(gomock.Any(), s.actor(), 1).
			Return(&commands.GenerateWeekResult{
				WeekStart: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
				Created:   9,
			}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"week": 1}, "")

		var response resdto.GenerateScheduleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("2026-09-07", response.WeekStart)
		s.Equal(int64(9), response.Created)
	})

	s.Run("error: 403 for non-admins", func() {
		s.mockCommands.EXPECT().GenerateWeek(gomock.Any(), s.actor(), 0).
			Return(nil, errs.ErrForbidden)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("error: 400 on a week out of range", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"week": -1}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}
