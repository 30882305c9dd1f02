package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"reportflow/config"
	"reportflow/database"
	"reportflow/routes"
	"reportflow/utils"
)

const testPassword = "password123"

// setupTest wires a fresh sqlite database, upload dir and router for a test
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.InitConfig()
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.UploadDir = t.TempDir()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.DB = db
	require.NoError(t, database.RunMigrations())

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func createUser(t *testing.T, name, email, phone, role, unit string) database.User {
	t.Helper()
	hash, err := utils.HashPassword(testPassword)
	require.NoError(t, err)

	user := database.User{
		Name:          name,
		Email:         email,
		Phone:         phone,
		Password:      hash,
		Role:          role,
		JobPosition:   "Officer",
		StructureUnit: unit,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, user database.User) string {
	t.Helper()
	token, err := utils.GenerateJWT(user.ID, user.Email, time.Now().Add(time.Hour))
	require.NoError(t, err)
	return token
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doMultipart(r *gin.Engine, method, path, token string, fields map[string]string, fileName string, fileContent []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		_ = mw.WriteField(key, value)
	}
	if fileName != "" {
		fw, _ := mw.CreateFormFile("uploadReport", fileName)
		_, _ = fw.Write(fileContent)
	}
	_ = mw.Close()

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeInto(data []byte, out interface{}) error {
	return json.Unmarshal(data, out)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func validReportFields() map[string]string {
	return map[string]string{
		"reportType":         database.ReportTypeFinancial,
		"reportCode":         "OB_TB001",
		"reportDate":         "2025-01-31",
		"reportPeriodStart":  "2025-01-01",
		"reportPeriodEnd":    "2025-01-31",
		"reportingFrequency": "Monthly",
	}
}

func auditEntries(t *testing.T, eventType string) []database.AuditLog {
	t.Helper()
	var entries []database.AuditLog
	require.NoError(t, database.DB.Where("event_type = ?", eventType).Find(&entries).Error)
	return entries
}

func auditDetails(t *testing.T, entry database.AuditLog) map[string]interface{} {
	t.Helper()
	var details map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(entry.Details), &details))
	return details
}
