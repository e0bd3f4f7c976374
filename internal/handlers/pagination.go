package handlers

import (
	"errors"
	"strconv"
)

const maxPageSize = 100

// parsePaginationParams reads optional page/limit query values. Both
// absent means "no pagination" (limit 0), matching the original client
// which fetches the full history and pages locally.
func parsePaginationParams(pageStr, limitStr string) (int, int, error) {
	if pageStr == "" && limitStr == "" {
		return 1, 0, nil
	}

	page := 1
	limit := 20

	if pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p < 1 {
			return 0, 0, errors.New("invalid page")
		}
		page = p
	}

	if limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 {
			return 0, 0, errors.New("invalid limit")
		}
		if l > maxPageSize {
			l = maxPageSize
		}
		limit = l
	}

	return page, limit, nil
}
