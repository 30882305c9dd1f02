package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportflow/database"
)

func TestLoginUnknownEmailAuditsFailure(t *testing.T) {
	r := setupTest(t)

	w := doJSON(r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "x@y.com",
		"password": "whatever",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, w)["error"])

	entries := auditEntries(t, database.EventFailedLogin)
	require.Len(t, entries, 1)
	assert.Equal(t, "System", entries[0].PerformedBy)
	assert.Nil(t, entries[0].UserID)

	details := auditDetails(t, entries[0])
	assert.Equal(t, "User not found", details["reason"])
	assert.Equal(t, "x@y.com", details["emailAttempted"])
}

func TestLoginWrongPasswordAuditsFailure(t *testing.T) {
	r := setupTest(t)
	user := createUser(t, "Abebe", "abebe@example.com", "0911000001", database.RoleDistrictExpert, "Bonga District")

	w := doJSON(r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    user.Email,
		"password": "not-the-password",
	})

	// Same uniform response as an unknown email
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, w)["error"])

	entries := auditEntries(t, database.EventFailedLogin)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].UserID)
	assert.Equal(t, user.ID, *entries[0].UserID)
	assert.Equal(t, "Invalid password", auditDetails(t, entries[0])["reason"])
}

func TestLoginSuccessReturnsWorkingToken(t *testing.T) {
	r := setupTest(t)
	user := createUser(t, "Abebe", "abebe@example.com", "0911000001", database.RoleDistrictExpert, "Bonga District")

	w := doJSON(r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    user.Email,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	// No failed-login entries for a successful login
	assert.Empty(t, auditEntries(t, database.EventFailedLogin))

	profile := doJSON(r, http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusOK, profile.Code)
	assert.Equal(t, user.Email, decodeBody(t, profile)["email"])
}

func TestLoginNeverExposesPassword(t *testing.T) {
	r := setupTest(t)
	user := createUser(t, "Abebe", "abebe@example.com", "0911000001", database.RoleDistrictExpert, "Bonga District")

	w := doJSON(r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    user.Email,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "$2a$")
}

func TestRegisterCreatesUserAndToken(t *testing.T) {
	r := setupTest(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":           "Chaltu",
		"email":          "chaltu@example.com",
		"phone":          "0911000002",
		"password":       "secret123",
		"role":           database.RoleOperationManager,
		"job_position":   "Operations Officer",
		"structure_unit": "Sodo District",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])

	var stored database.User
	require.NoError(t, database.DB.Where("email = ?", "chaltu@example.com").First(&stored).Error)
	assert.Equal(t, database.RoleOperationManager, stored.Role)
	assert.NotEqual(t, "secret123", stored.Password)

	entries := auditEntries(t, database.EventUserCreated)
	require.Len(t, entries, 1)
}

func TestRegisterDefaultsRoleToDistrictExpert(t *testing.T) {
	r := setupTest(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":           "Chaltu",
		"email":          "chaltu@example.com",
		"phone":          "0911000002",
		"password":       "secret123",
		"job_position":   "Expert",
		"structure_unit": "Sodo District",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var stored database.User
	require.NoError(t, database.DB.Where("email = ?", "chaltu@example.com").First(&stored).Error)
	assert.Equal(t, database.RoleDistrictExpert, stored.Role)
}

func TestRegisterValidationAggregatesAllErrors(t *testing.T) {
	r := setupTest(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "not-an-email",
		"password": "abc",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	errs, ok := body["errors"].([]interface{})
	require.True(t, ok)
	// name, email, phone, password, job_position, structure_unit all fail
	assert.GreaterOrEqual(t, len(errs), 4)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	r := setupTest(t)
	createUser(t, "Abebe", "abebe@example.com", "0911000001", database.RoleDistrictExpert, "Bonga District")

	w := doJSON(r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":           "Someone Else",
		"email":          "abebe@example.com",
		"phone":          "0911999999",
		"password":       "secret123",
		"job_position":   "Expert",
		"structure_unit": "Sodo District",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterDuplicatePhoneConflicts(t *testing.T) {
	r := setupTest(t)
	createUser(t, "Abebe", "abebe@example.com", "0911000001", database.RoleDistrictExpert, "Bonga District")

	w := doJSON(r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":           "Someone Else",
		"email":          "someone@example.com",
		"phone":          "0911000001",
		"password":       "secret123",
		"job_position":   "Expert",
		"structure_unit": "Sodo District",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := setupTest(t)

	w := doJSON(r, http.MethodGet, "/api/reports", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/api/reports", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeletedUserTokenIsRejected(t *testing.T) {
	r := setupTest(t)
	user := createUser(t, "Abebe", "abebe@example.com", "0911000001", database.RoleDistrictExpert, "Bonga District")
	token := tokenFor(t, user)

	require.NoError(t, database.DB.Delete(&user).Error)

	w := doJSON(r, http.MethodGet, "/api/reports", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
