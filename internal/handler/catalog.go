package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/openshelf/library-service/internal/model"
)

// GetBooks godoc
// @Summary  List books with optional filters
// @Tags     catalog
// @Param    title      query  string  false  "title substring"
// @Param    author     query  string  false  "author-name substring"
// @Param    category   query  string  false  "category-name substring"
// @Param    available  query  bool    false  "availability flag"
// @Success  200  {object}  model.ListBooks
// @Router   /api/v1/books [get]
func (h *Handler) GetBooks(c echo.Context) error {
	f := model.BookFilter{
		Title:    c.QueryParam("title"),
		Author:   c.QueryParam("author"),
		Category: c.QueryParam("category"),
	}

	var err error
	if availableParam := c.QueryParam("available"); availableParam != "" {
		available, err := strconv.ParseBool(availableParam)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "available is invalid")
		}
		f.Available = &available
	}
	if pageParam := c.QueryParam("page"); pageParam != "" {
		if f.Page, err = strconv.Atoi(pageParam); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "page is invalid")
		}
	}
	if sizeParam := c.QueryParam("size"); sizeParam != "" {
		if f.Size, err = strconv.Atoi(sizeParam); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "size is invalid")
		}
	}

	books, err := h.catalogSvc.ListBooks(c.Request().Context(), f)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) GetBook(c echo.Context) error {
	bookID, err := strconv.Atoi(c.Param("bookId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bookId is invalid")
	}
	book, err := h.catalogSvc.GetBook(c.Request().Context(), bookID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) BookHistory(c echo.Context) error {
	bookID, err := strconv.Atoi(c.Param("bookId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bookId is invalid")
	}
	history, err := h.catalogSvc.BookHistory(c.Request().Context(), bookID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, history)
}

func (h *Handler) GetAuthors(c echo.Context) error {
	authors, err := h.catalogSvc.ListAuthors(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, authors)
}

func (h *Handler) GetCategories(c echo.Context) error {
	categories, err := h.catalogSvc.ListCategories(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *Handler) TopBorrowed(c echo.Context) error {
	limit := 10
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		var err error
		if limit, err = strconv.Atoi(limitParam); err != nil || limit <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit is invalid")
		}
	}
	top, err := h.catalogSvc.TopBorrowed(c.Request().Context(), limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, top)
}
