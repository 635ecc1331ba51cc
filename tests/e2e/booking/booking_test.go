//go:build e2e

package booking_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"ellevate-booking/internal/domain/user"
	resdto "ellevate-booking/internal/handler/dto/response"
	"ellevate-booking/tests/common/authtest"
	"ellevate-booking/tests/common/dbtest"
	"ellevate-booking/tests/common/httptest"
	"ellevate-booking/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL = "/api/reservations"
	slotsURL        = "/api/slots"
)

type bookingSuite struct {
	e2e.SharedSuite
	jwtHelper *authtest.JWTHelper
	loc       *time.Location
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(bookingSuite))
}

func (s *bookingSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = authtest.NewJWTHelper(s.Config.JWT)

	loc, err := time.LoadLocation(s.Config.Booking.TimeZone)
	require.NoError(s.T(), err)
	s.loc = loc
}

// member creates a user row and returns its id with a valid session token.
func (s *bookingSuite) member(email string) (uuid.UUID, string) {
	id := dbtest.CreateTestUser(s.T(), s.DB, email, string(user.RoleUser))
	return id, s.jwtHelper.GenerateToken(s.T(), id, user.RoleUser)
}

func (s *bookingSuite) admin(email string) (uuid.UUID, string) {
	id := dbtest.CreateTestUser(s.T(), s.DB, email, string(user.RoleAdmin))
	return id, s.jwtHelper.GenerateToken(s.T(), id, user.RoleAdmin)
}

// futureSlot creates a slot starting tomorrow evening, always outside the
// cancellation cutoff.
func (s *bookingSuite) futureSlot(capacity int32) uuid.UUID {
	date := time.Now().In(s.loc).AddDate(0, 0, 1)
	return dbtest.CreateTestSlot(s.T(), s.DB, date, "19:15", "20:15", capacity)
}

// nearSlot creates a slot starting soon enough that the cancellation window
// is already closed but booking is still possible.
func (s *bookingSuite) nearSlot(capacity int32) uuid.UUID {
	at := time.Now().In(s.loc).Add(90 * time.Minute)
	return dbtest.CreateTestSlot(s.T(), s.DB, at, at.Format("15:04"), at.Add(time.Hour).Format("15:04"), capacity)
}

func (s *bookingSuite) pastSlot() uuid.UUID {
	date := time.Now().In(s.loc).AddDate(0, 0, -2)
	return dbtest.CreateTestSlot(s.T(), s.DB, date, "19:15", "20:15", 8)
}

func (s *bookingSuite) book(token string, slotID uuid.UUID) *resdto.ReservationResponse {
	body := map[string]any{"slot_id": slotID.String()}
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, body, token)
	require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

	var response resdto.ReservationResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &response)
	return &response
}

func (s *bookingSuite) TestCreateReservation() {
	s.Run("member books a free seat", func() {
		memberID, token := s.member("ana@example.com")
		slotID := s.futureSlot(8)

		response := s.book(token, slotID)
		require.Equal(s.T(), memberID, response.UserID)
		require.Equal(s.T(), slotID, response.SlotID)
		require.Equal(s.T(), "active", response.Status)
		require.Nil(s.T(), response.CancelledAt)
	})

	s.Run("booking twice is rejected", func() {
		_, token := s.member("ana@example.com")
		slotID := s.futureSlot(8)

		s.book(token, slotID)

		body := map[string]any{"slot_id": slotID.String()}
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, body, token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "Already booked")
	})

	s.Run("full slot is rejected", func() {
		_, first := s.member("ana@example.com")
		_, second := s.member("ivan@example.com")
		slotID := s.futureSlot(1)

		s.book(first, slotID)

		body := map[string]any{"slot_id": slotID.String()}
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, body, second)
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "full")
	})

	s.Run("past slot is rejected", func() {
		_, token := s.member("ana@example.com")
		slotID := s.pastSlot()

		body := map[string]any{"slot_id": slotID.String()}
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, body, token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "already started")
	})

	s.Run("unknown slot is rejected", func() {
		_, token := s.member("ana@example.com")

		body := map[string]any{"slot_id": uuid.New().String()}
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, body, token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Training slot not found")
	})

	s.Run("member cannot book for someone else", func() {
		_, token := s.member("ana@example.com")
		otherID := dbtest.CreateTestUser(s.T(), s.DB, "ivan@example.com", string(user.RoleUser))
		slotID := s.futureSlot(8)

		body := map[string]any{"slot_id": slotID.String(), "user_id": otherID.String()}
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, body, token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "Cannot book for another member")
	})

	s.Run("admin books on behalf of a member", func() {
		_, adminToken := s.admin("coach@example.com")
		memberID := dbtest.CreateTestUser(s.T(), s.DB, "ana@example.com", string(user.RoleUser))
		slotID := s.futureSlot(8)

		body := map[string]any{"slot_id": slotID.String(), "user_id": memberID.String()}
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, body, adminToken)

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &response)
		require.Equal(s.T(), memberID, response.UserID)
	})

	s.Run("unauthenticated requests are rejected", func() {
		slotID := s.futureSlot(8)

		body := map[string]any{"slot_id": slotID.String()}
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, body, "")
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})
}

func (s *bookingSuite) TestCancelAndRebook() {
	s.Run("cancel releases the seat and rebooking reuses the reservation", func() {
		t := s.T()
		_, token := s.member("ana@example.com")
		slotID := s.futureSlot(8)

		created := s.book(token, slotID)

		cancelURL := fmt.Sprintf("%s/%s", reservationsURL, created.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, cancelURL, nil, token)

		var cancelled resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &cancelled)
		require.Equal(t, "cancelled", cancelled.Status)
		require.NotNil(t, cancelled.CancelledAt)

		// Rebooking flips the same row back to active.
		rebooked := s.book(token, slotID)
		require.Equal(t, created.ID, rebooked.ID)
		require.Equal(t, "active", rebooked.Status)
		require.Nil(t, rebooked.CancelledAt)

		var count int
		err := s.DB.QueryRow(context.Background(),
			"SELECT COUNT(*) FROM reservations WHERE slot_id = $1", slotID).Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 1, count, "cancel and rebook must not create a second row")
	})

	s.Run("cancelling twice is rejected", func() {
		_, token := s.member("ana@example.com")
		slotID := s.futureSlot(8)
		created := s.book(token, slotID)

		cancelURL := fmt.Sprintf("%s/%s", reservationsURL, created.ID)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, cancelURL, nil, token)
		require.Equal(s.T(), http.StatusOK, w.Code)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, cancelURL, nil, token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "already cancelled")
	})

	s.Run("cancel inside the cutoff is rejected", func() {
		_, token := s.member("ana@example.com")
		slotID := s.nearSlot(8)
		created := s.book(token, slotID)

		cancelURL := fmt.Sprintf("%s/%s", reservationsURL, created.ID)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, cancelURL, nil, token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "Too close to the session start")
	})

	s.Run("member cannot cancel someone else's reservation", func() {
		_, owner := s.member("ana@example.com")
		_, intruder := s.member("ivan@example.com")
		slotID := s.futureSlot(8)
		created := s.book(owner, slotID)

		cancelURL := fmt.Sprintf("%s/%s", reservationsURL, created.ID)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, cancelURL, nil, intruder)
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "Not your reservation")
	})

	s.Run("admin can cancel any reservation", func() {
		_, token := s.member("ana@example.com")
		_, adminToken := s.admin("coach@example.com")
		slotID := s.futureSlot(8)
		created := s.book(token, slotID)

		cancelURL := fmt.Sprintf("%s/%s", reservationsURL, created.ID)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, cancelURL, nil, adminToken)
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	})
}

func (s *bookingSuite) TestListReservations() {
	s.Run("members only see their own history", func() {
		t := s.T()
		_, ana := s.member("ana@example.com")
		_, ivan := s.member("ivan@example.com")
		slotID := s.futureSlot(8)

		s.book(ana, slotID)
		s.book(ivan, slotID)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL, nil, ana)

		var response []resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &response)
		require.Len(t, response, 1)
		require.Equal(t, "ana@example.com", response[0].UserEmail)
	})

	s.Run("admin filters by slot and status", func() {
		t := s.T()
		_, ana := s.member("ana@example.com")
		_, adminToken := s.admin("coach@example.com")
		slotID := s.futureSlot(8)

		created := s.book(ana, slotID)
		cancelURL := fmt.Sprintf("%s/%s", reservationsURL, created.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, cancelURL, nil, ana)
		require.Equal(t, http.StatusOK, w.Code)

		listURL := fmt.Sprintf("%s?slot_id=%s&status=cancelled", reservationsURL, slotID)
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, listURL, nil, adminToken)

		var response []resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &response)
		require.Len(t, response, 1)
		require.Equal(t, "cancelled", response[0].Status)
	})
}

func (s *bookingSuite) TestSlotAvailability() {
	s.Run("availability tracks active reservations", func() {
		t := s.T()
		_, ana := s.member("ana@example.com")
		_, ivan := s.member("ivan@example.com")
		slotID := s.futureSlot(8)

		s.book(ana, slotID)
		s.book(ivan, slotID)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf("%s/%s", slotsURL, slotID), nil, ana)

		var response resdto.SlotResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &response)
		require.Equal(t, int32(2), response.CurrentCount)
		require.Equal(t, int32(6), response.AvailableSpots)
		require.False(t, response.IsFull)
		require.Len(t, response.Attendees, 2)
	})

	s.Run("cancelled reservations do not count against capacity", func() {
		t := s.T()
		_, ana := s.member("ana@example.com")
		slotID := s.futureSlot(8)

		created := s.book(ana, slotID)
		cancelURL := fmt.Sprintf("%s/%s", reservationsURL, created.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, cancelURL, nil, ana)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf("%s/%s", slotsURL, slotID), nil, ana)

		var response resdto.SlotResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &response)
		require.Equal(t, int32(0), response.CurrentCount)
		require.Empty(t, response.Attendees)
	})
}

func (s *bookingSuite) TestGenerateSchedule() {
	s.Run("admin generates the weekly template idempotently", func() {
		t := s.T()
		_, adminToken := s.admin("coach@example.com")

		body := map[string]any{"week": 1}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, slotsURL, body, adminToken)

		var first resdto.GenerateScheduleResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &first)
		require.Equal(t, int64(9), first.Created, "3 days x 3 times")

		// Rerunning must not duplicate slots.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, slotsURL, body, adminToken)

		var second resdto.GenerateScheduleResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &second)
		require.Equal(t, int64(0), second.Created)

		listURL := fmt.Sprintf("%s?week=1", slotsURL)
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, listURL, nil, adminToken)

		var slots []resdto.SlotResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &slots)
		require.Len(t, slots, 9)
	})

	s.Run("members cannot generate the schedule", func() {
		_, token := s.member("ana@example.com")

		body := map[string]any{"week": 1}
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, slotsURL, body, token)
		require.Equal(s.T(), http.StatusForbidden, w.Code)
	})
}

// Concurrent bookings on one slot must never exceed its capacity; the slot
// row lock serializes the capacity check and insert.
func (s *bookingSuite) TestConcurrentBookingRespectsCapacity() {
	s.Run("exactly capacity bookings win", func() {
		t := s.T()
		const members = 8
		const capacity = 2

		slotID := s.futureSlot(capacity)

		tokens := make([]string, members)
		for i := range tokens {
			_, tokens[i] = s.member(fmt.Sprintf("member%d@example.com", i))
		}

		results := make([]int, members)
		var wg sync.WaitGroup
		for i, token := range tokens {
			wg.Add(1)
			go func(i int, token string) {
				defer wg.Done()
				body := map[string]any{"slot_id": slotID.String()}
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, body, token)
				results[i] = w.Code
			}(i, token)
		}
		wg.Wait()

		var created, rejected int
		for _, code := range results {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				rejected++
			default:
				t.Fatalf("unexpected status %d", code)
			}
		}
		require.Equal(t, capacity, created)
		require.Equal(t, members-capacity, rejected)

		var active int
		err := s.DB.QueryRow(context.Background(),
			"SELECT COUNT(*) FROM reservations WHERE slot_id = $1 AND status = 'active'", slotID).Scan(&active)
		require.NoError(t, err)
		require.Equal(t, capacity, active)
	})
}
