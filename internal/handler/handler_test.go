package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/openshelf/library-service/internal/errs"
	"github.com/openshelf/library-service/internal/handler"
	"github.com/openshelf/library-service/internal/model"
	"github.com/openshelf/library-service/pkg/auth"
	"github.com/openshelf/library-service/pkg/validate"

	service_mocks "github.com/openshelf/library-service/internal/handler/mocks"
)

// asUser injects an authenticated user the way the jwt middleware does.
func asUser(user auth.UserInfo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := auth.SetAuthContext(c.Request().Context(), user)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func TestHandler_Borrow(t *testing.T) {
	t.Parallel()
	type input struct {
		bookID string
		body   string
		user   auth.UserInfo
	}
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(l *service_mocks.MockLoanService, ev *service_mocks.MockLoanEvents, inp input)

	dueDate := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	member := auth.UserInfo{ID: 7, Username: "reader", Role: auth.RoleMember}

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		input        input
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			mockBehavior: func(l *service_mocks.MockLoanService, ev *service_mocks.MockLoanEvents, inp input) {
				l.EXPECT().
					Borrow(gomock.Any(), model.BorrowRequest{BookID: 1, UserID: 7, DueDays: 21}).
					Return(model.BorrowResponse{
						Message: "Book borrowed successfully",
						LoanUid: "0d3c9b2e-5f04-4aef-aab2-6e53f77f9a11",
						DueDate: dueDate,
					}, nil)
				ev.EXPECT().Log(gomock.Any()).Return(nil)
			},
			input: input{
				bookID: "1",
				body:   `{"dueDays":21}`,
				user:   member,
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"message":"Book borrowed successfully","loanUid":"0d3c9b2e-5f04-4aef-aab2-6e53f77f9a11","dueDate":"2026-09-12T00:00:00Z"}`,
			},
		},
		{
			name: "ok. event publish failure does not fail the borrow",
			mockBehavior: func(l *service_mocks.MockLoanService, ev *service_mocks.MockLoanEvents, inp input) {
				l.EXPECT().
					Borrow(gomock.Any(), model.BorrowRequest{BookID: 1, UserID: 7}).
					Return(model.BorrowResponse{
						Message: "Book borrowed successfully",
						LoanUid: "0d3c9b2e-5f04-4aef-aab2-6e53f77f9a11",
						DueDate: dueDate,
					}, nil)
				ev.EXPECT().Log(gomock.Any()).Return(errors.New("broker down"))
			},
			input: input{
				bookID: "1",
				body:   `{}`,
				user:   member,
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"message":"Book borrowed successfully","loanUid":"0d3c9b2e-5f04-4aef-aab2-6e53f77f9a11","dueDate":"2026-09-12T00:00:00Z"}`,
			},
		},
		{
			name:         "err. bookId is not a number",
			mockBehavior: func(l *service_mocks.MockLoanService, ev *service_mocks.MockLoanEvents, inp input) {},
			input: input{
				bookID: "abc",
				body:   `{}`,
				user:   member,
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"bookId is invalid"}`,
			},
			wantErr: true,
		},
		{
			name: "err. book not found",
			mockBehavior: func(l *service_mocks.MockLoanService, ev *service_mocks.MockLoanEvents, inp input) {
				l.EXPECT().
					Borrow(gomock.Any(), model.BorrowRequest{BookID: 99, UserID: 7}).
					Return(model.BorrowResponse{}, errs.ErrBookNotFound)
			},
			input: input{
				bookID: "99",
				body:   `{}`,
				user:   member,
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"book not found"}`,
			},
			wantErr: true,
		},
		{
			name: "err. book already borrowed",
			mockBehavior: func(l *service_mocks.MockLoanService, ev *service_mocks.MockLoanEvents, inp input) {
				l.EXPECT().
					Borrow(gomock.Any(), model.BorrowRequest{BookID: 1, UserID: 7}).
					Return(model.BorrowResponse{}, errs.ErrBookUnavailable)
			},
			input: input{
				bookID: "1",
				body:   `{}`,
				user:   member,
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"book is not available for borrowing"}`,
			},
			wantErr: true,
		},
		{
			name: "err. borrower has overdue books",
			mockBehavior: func(l *service_mocks.MockLoanService, ev *service_mocks.MockLoanEvents, inp input) {
				l.EXPECT().
					Borrow(gomock.Any(), model.BorrowRequest{BookID: 1, UserID: 7}).
					Return(model.BorrowResponse{}, errs.ErrOverdueLoans)
			},
			input: input{
				bookID: "1",
				body:   `{}`,
				user:   member,
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"you have overdue books, return them before borrowing more"}`,
			},
			wantErr: true,
		},
		{
			name: "err. internal",
			mockBehavior: func(l *service_mocks.MockLoanService, ev *service_mocks.MockLoanEvents, inp input) {
				l.EXPECT().
					Borrow(gomock.Any(), model.BorrowRequest{BookID: 1, UserID: 7}).
					Return(model.BorrowResponse{}, errors.New("db internal"))
			},
			input: input{
				bookID: "1",
				body:   `{}`,
				user:   member,
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"db internal"}`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			loanSvc := service_mocks.NewMockLoanService(c)
			events := service_mocks.NewMockLoanEvents(c)
			log := zap.NewExample().Named("test")
			h := handler.New(nil, loanSvc, nil, nil, events, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/api/v1/borrow/:bookId", h.Borrow, asUser(tt.input.user))

			r := httptest.NewRequest(
				http.MethodPost, fmt.Sprintf("/api/v1/borrow/%s", tt.input.bookID), strings.NewReader(tt.input.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(loanSvc, events, tt.input)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_Return(t *testing.T) {
	t.Parallel()
	type input struct {
		loanUid string
		user    auth.UserInfo
	}
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(l *service_mocks.MockLoanService, ev *service_mocks.MockLoanEvents, inp input)

	member := auth.UserInfo{ID: 7, Username: "reader", Role: auth.RoleMember}
	returned := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		input        input
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			mockBehavior: func(l *service_mocks.MockLoanService, ev *service_mocks.MockLoanEvents, inp input) {
				l.EXPECT().
					Return(gomock.Any(), inp.loanUid, inp.user.ID).
					Return(model.Loan{
						LoanUid:    inp.loanUid,
						BookID:     3,
						UserID:     inp.user.ID,
						Status:     model.StatusReturned,
						ReturnDate: &returned,
					}, nil)
				ev.EXPECT().Log(gomock.Any()).Return(nil)
			},
			input: input{
				loanUid: "83575e12-7ce0-48ee-9931-51919ff3c9ee",
				user:    member,
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"message":"Book returned successfully"}`,
			},
		},
		{
			name: "err. loan not found",
			mockBehavior: func(l *service_mocks.MockLoanService, ev *service_mocks.MockLoanEvents, inp input) {
				l.EXPECT().
					Return(gomock.Any(), inp.loanUid, inp.user.ID).
					Return(model.Loan{}, errs.ErrLoanNotFound)
			},
			input: input{
				loanUid: "83575e12-7ce0-48ee-9931-51919ff3c9ee",
				user:    member,
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"borrow record not found"}`,
			},
			wantErr: true,
		},
		{
			name: "err. already returned",
			mockBehavior: func(l *service_mocks.MockLoanService, ev *service_mocks.MockLoanEvents, inp input) {
				l.EXPECT().
					Return(gomock.Any(), inp.loanUid, inp.user.ID).
					Return(model.Loan{}, errs.ErrLoanClosed)
			},
			input: input{
				loanUid: "83575e12-7ce0-48ee-9931-51919ff3c9ee",
				user:    member,
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"book already returned"}`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			loanSvc := service_mocks.NewMockLoanService(c)
			events := service_mocks.NewMockLoanEvents(c)
			log := zap.NewExample().Named("test")
			h := handler.New(nil, loanSvc, nil, nil, events, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/api/v1/return/:loanUid", h.Return, asUser(tt.input.user))

			r := httptest.NewRequest(
				http.MethodPost, fmt.Sprintf("/api/v1/return/%s", tt.input.loanUid), http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(loanSvc, events, tt.input)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_GetBooks(t *testing.T) {
	t.Parallel()
	type input struct {
		query string
	}
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockCatalogService, inp input)

	isbn := "978-0135957059"
	year := 2019

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		input        input
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockCatalogService, inp input) {
				r.EXPECT().
					ListBooks(context.Background(), model.BookFilter{Title: "pragmatic", Page: 1, Size: 10}).
					Return(model.ListBooks{
						Paging: model.Paging{
							Page:          1,
							PageSize:      10,
							TotalElements: 1,
						},
						Items: []model.BookDetails{
							{
								Book: model.Book{
									ID:            1,
									Title:         "The Pragmatic Programmer",
									AuthorID:      1,
									CategoryID:    2,
									Isbn:          &isbn,
									PublishedYear: &year,
									Available:     true,
								},
								AuthorName:   "Andrew Hunt",
								CategoryName: "Software",
							},
						},
					}, nil)
			},
			input: input{
				query: "title=pragmatic&page=1&size=10",
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"page":1,"pageSize":10,"totalElements":1,"items":[{"bookId":1,"title":"The Pragmatic Programmer","authorId":1,"categoryId":2,"isbn":"978-0135957059","publishedYear":2019,"available":true,"authorName":"Andrew Hunt","categoryName":"Software"}]}`,
			},
		},
		{
			name:         "err. available flag is not a bool",
			mockBehavior: func(r *service_mocks.MockCatalogService, inp input) {},
			input: input{
				query: "available=maybe",
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"available is invalid"}`,
			},
			wantErr: true,
		},
		{
			name: "err. internal",
			mockBehavior: func(r *service_mocks.MockCatalogService, inp input) {
				r.EXPECT().
					ListBooks(context.Background(), model.BookFilter{}).
					Return(model.ListBooks{}, errors.New("db internal"))
			},
			input: input{
				query: "",
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"db internal"}`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			catalogSvc := service_mocks.NewMockCatalogService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(catalogSvc, nil, nil, nil, nil, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.GET("/api/v1/books", h.GetBooks)

			r := httptest.NewRequest(
				http.MethodGet, fmt.Sprintf("/api/v1/books?%s", tt.input.query), http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(catalogSvc, tt.input)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}
