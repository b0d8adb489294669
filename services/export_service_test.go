package services

import (
	"bytes"
	"testing"

	"github.com/Abdelrazek97/form-app/database/dbtest"
	"github.com/Abdelrazek97/form-app/model"
	"github.com/Abdelrazek97/form-app/utils/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportWorkbook(t *testing.T) {
	db := dbtest.New(t)
	admin := createUser(t, db, "admin", model.RoleAdmin)
	mona := createUser(t, db, "mona", model.RoleUser)
	require.NoError(t, db.Create(&model.UniversityService{
		UserID: mona.UserID, TaskLevel: "College", TaskType: "Committee", Notes: "Exams",
	}).Error)

	svc := NewExportService(NewReportService(db))

	var buf bytes.Buffer
	require.NoError(t, svc.Write(ctx, admin, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, len(model.RecordKinds)+1)
	assert.Equal(t, "KPIs", sheets[0])
	assert.Contains(t, sheets, "University Service")

	header, err := f.GetCellValue("University Service", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Username", header)

	owner, err := f.GetCellValue("University Service", "B2")
	require.NoError(t, err)
	assert.Equal(t, "mona", owner)

	notes, err := f.GetCellValue("University Service", "F2")
	require.NoError(t, err)
	assert.Equal(t, "Exams", notes)

	label, err := f.GetCellValue("KPIs", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Academic load records", label)
}

func TestExportRequiresAdmin(t *testing.T) {
	db := dbtest.New(t)
	mona := createUser(t, db, "mona", model.RoleUser)

	var buf bytes.Buffer
	err := NewExportService(NewReportService(db)).Write(ctx, mona, &buf)
	assert.ErrorIs(t, err, auth.ErrForbidden)
	assert.Zero(t, buf.Len())
}
