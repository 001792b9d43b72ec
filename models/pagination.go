package models

import (
	"math"
	"net/http"
	"strconv"

	"gorm.io/gorm"
)

// PageFilter carries list-endpoint paging parameters.
type PageFilter struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// PageFilterFromRequest reads page/pageSize query params with sane bounds.
func PageFilterFromRequest(r *http.Request) PageFilter {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return PageFilter{Page: page, PageSize: size}
}

// Page is the envelope every paginated list endpoint returns.
type Page struct {
	PageItems     interface{} `json:"pageItems"`
	PageSize      int         `json:"pageSize"`
	CurrentPage   int         `json:"currentPage"`
	NumberOfPages int         `json:"numberOfPages"`
	TotalItems    int64       `json:"totalItems"`
}

// Paginate runs a counted, offset-paged query and fills dest with the page
// items. The caller passes an already-filtered query.
func Paginate(query *gorm.DB, filter PageFilter, dest interface{}) (*Page, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}
	offset := (filter.Page - 1) * filter.PageSize
	if err := query.Offset(offset).Limit(filter.PageSize).Find(dest).Error; err != nil {
		return nil, err
	}
	pages := int(math.Ceil(float64(total) / float64(filter.PageSize)))
	return &Page{
		PageItems:     dest,
		PageSize:      filter.PageSize,
		CurrentPage:   filter.Page,
		NumberOfPages: pages,
		TotalItems:    total,
	}, nil
}
