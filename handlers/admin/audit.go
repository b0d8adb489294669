package admin

import (
	"strconv"

	"github.com/Abdelrazek97/form-app/database"
	"github.com/Abdelrazek97/form-app/model"
	"github.com/Abdelrazek97/form-app/utils/view"
	"github.com/gofiber/fiber/v2"
)

// ListAuditLogs retrieves admin audit logs with pagination
// GET /admin/audit
func ListAuditLogs(c *fiber.Ctx, store database.Storage, presenter *view.Presenter) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	page, limit = paginate(page, limit, 20)

	action := c.Query("action")
	resource := c.Query("resource")
	adminIDStr := c.Query("admin_id")

	query := store.DB().WithContext(c.UserContext()).Model(&model.AdminAuditLog{})
	if action != "" {
		query = query.Where("action = ?", action)
	}
	if resource != "" {
		query = query.Where("resource = ?", resource)
	}
	if adminIDStr != "" {
		if adminID, err := strconv.ParseUint(adminIDStr, 10, 32); err == nil {
			query = query.Where("admin_id = ?", adminID)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return presenter.ServerError(c, err)
	}

	var logs []model.AdminAuditLog
	offset := (page - 1) * limit
	if err := query.Preload("Admin").Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return presenter.ServerError(c, err)
	}

	pages := totalPages(total, limit)
	return presenter.Show(c, "admin/audit", fiber.Map{
		"Title":      "Audit Log",
		"Logs":       logs,
		"Page":       page,
		"TotalPages": pages,
		"PrevPage":   page - 1,
		"NextPage":   page + 1,
	}, fiber.Map{
		"logs":       logs,
		"pagination": pagination(page, limit, total),
	})
}
