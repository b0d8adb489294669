package admin

import (
	"strings"

	"github.com/Abdelrazek97/form-app/database"
	"github.com/Abdelrazek97/form-app/model"
	"github.com/Abdelrazek97/form-app/utils/view"
	"github.com/gofiber/fiber/v2"
)

// ListUsersRequest represents the query parameters for listing users
type ListUsersRequest struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Role   string `query:"role"`
	Search string `query:"search"`
}

// ListUsers retrieves accounts with pagination and filters
// GET /admin/users
func ListUsers(c *fiber.Ctx, store database.Storage, presenter *view.Presenter) error {
	var req ListUsersRequest
	if err := c.QueryParser(&req); err != nil {
		return presenter.Invalid(c, fiber.StatusBadRequest, "BAD_REQUEST", "Invalid query parameters", "admin/users", nil)
	}

	page, limit := paginate(req.Page, req.Limit, 50)

	query := store.DB().WithContext(c.UserContext()).Model(&model.User{})
	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}
	if req.Search != "" {
		searchTerm := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(username) LIKE ? OR LOWER(full_name) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return presenter.ServerError(c, err)
	}

	var users []model.User
	if err := query.Order("id ASC").Offset((page - 1) * limit).Limit(limit).Find(&users).Error; err != nil {
		return presenter.ServerError(c, err)
	}

	return presenter.Show(c, "admin/users", fiber.Map{
		"Title": "Users",
		"Total": total,
		"Users": users,
	}, fiber.Map{
		"users":      users,
		"pagination": pagination(page, limit, total),
	})
}

// maxPage bounds the offset computed from page and limit
const maxPage = 10000

func paginate(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit
}

func pagination(page, limit int, total int64) fiber.Map {
	return fiber.Map{
		"page":        page,
		"limit":       limit,
		"total":       total,
		"total_pages": totalPages(total, limit),
	}
}

func totalPages(total int64, limit int) int {
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		return 1
	}
	return pages
}
