package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/openshelf/library-service/internal/model"
	"github.com/openshelf/library-service/pkg/auth"
	"github.com/openshelf/library-service/pkg/kafka"
)

// Borrow godoc
// @Summary  Borrow a book
// @Tags     loans
// @Param    bookId  path  int  true  "book id"
// @Success  201  {object}  model.BorrowResponse
// @Router   /api/v1/borrow/{bookId} [post]
func (h *Handler) Borrow(c echo.Context) error {
	user, ok := auth.FromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	bookID, err := strconv.Atoi(c.Param("bookId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bookId is invalid")
	}

	var req model.BorrowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.BookID = bookID
	req.UserID = user.ID
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.loanSvc.Borrow(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}

	h.logEvent(kafka.LoanEvent{
		EventType:  kafka.EventBorrowed,
		LoanUid:    resp.LoanUid,
		BookID:     bookID,
		UserID:     user.ID,
		OccurredAt: time.Now().UTC(),
	})

	return c.JSON(http.StatusCreated, resp)
}

// Return godoc
// @Summary  Return a borrowed book
// @Tags     loans
// @Param    loanUid  path  string  true  "loan uid"
// @Success  200  {object}  map[string]string
// @Router   /api/v1/return/{loanUid} [post]
func (h *Handler) Return(c echo.Context) error {
	user, ok := auth.FromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	loanUid := c.Param("loanUid")
	if loanUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "loanUid is empty")
	}

	loan, err := h.loanSvc.Return(c.Request().Context(), loanUid, user.ID)
	if err != nil {
		return httpError(err)
	}

	h.logEvent(kafka.LoanEvent{
		EventType:  kafka.EventReturned,
		LoanUid:    loan.LoanUid,
		BookID:     loan.BookID,
		UserID:     user.ID,
		OccurredAt: time.Now().UTC(),
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Book returned successfully"})
}

func (h *Handler) MyLoans(c echo.Context) error {
	user, ok := auth.FromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	loans, err := h.loanSvc.UserLoans(c.Request().Context(), user.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

// logEvent publishes the audit record best effort: a broker outage
// must never fail a committed transition.
func (h *Handler) logEvent(event kafka.LoanEvent) {
	if h.events == nil {
		return
	}
	if err := h.events.Log(event); err != nil {
		h.log.Warn("loan event publish", zap.String("type", event.EventType), zap.Error(err))
	}
}
