package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"reportflow/config"
	"reportflow/database"
	"reportflow/utils"
)

// LoginRequest contains the credentials for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest contains the data for user registration
type RegisterRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	Password      string `json:"password" binding:"required,min=6"`
	Role          string `json:"role"`
	JobPosition   string `json:"job_position" binding:"required"`
	StructureUnit string `json:"structure_unit" binding:"required"`
}

// LoginResponse is the structure returned after login or registration
type LoginResponse struct {
	Token  string        `json:"token"`
	User   database.User `json:"user"`
	Expiry int64         `json:"expiry"`
}

// Login handles user authentication and returns a JWT token. Unknown email
// and wrong password both yield the same "Invalid credentials" response; the
// distinction lives only in the audit log.
func Login(c *gin.Context) {
	var loginRequest LoginRequest

	if err := c.ShouldBindJSON(&loginRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": ValidationMessages(err)})
		return
	}

	var user database.User
	result := database.DB.Where("email = ?", loginRequest.Email).First(&user)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			database.RecordAudit(database.EventFailedLogin, nil, nil, "System", c.ClientIP(), map[string]interface{}{
				"emailAttempted": loginRequest.Email,
				"reason":         "User not found",
			})
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		log.Printf("Database error: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if !utils.CheckPasswordHash(loginRequest.Password, user.Password) {
		userID := user.ID
		database.RecordAudit(database.EventFailedLogin, &userID, nil, "System", c.ClientIP(), map[string]interface{}{
			"emailAttempted": loginRequest.Email,
			"reason":         "Invalid password",
		})
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	expirationTime := time.Now().Add(config.GetJWTExpiration())
	token, err := utils.GenerateJWT(user.ID, user.Email, expirationTime)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:  token,
		User:   user,
		Expiry: expirationTime.Unix(),
	})
}

// Register handles user self-registration
func Register(c *gin.Context) {
	var registerRequest RegisterRequest

	if err := c.ShouldBindJSON(&registerRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": ValidationMessages(err)})
		return
	}

	if registerRequest.Role == "" {
		registerRequest.Role = database.RoleDistrictExpert
	}

	var errs []string
	if !database.IsValidRole(registerRequest.Role) {
		errs = append(errs, "role must be one of the defined roles")
	}
	if !database.IsValidStructureUnit(registerRequest.StructureUnit) {
		errs = append(errs, "structure_unit must be a known structure unit")
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": errs})
		return
	}

	var count int64
	database.DB.Model(&database.User{}).Where("email = ?", registerRequest.Email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		return
	}

	database.DB.Model(&database.User{}).Where("phone = ?", registerRequest.Phone).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Phone number already exists"})
		return
	}

	passwordHash, err := utils.HashPassword(registerRequest.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing registration"})
		return
	}

	user := database.User{
		Name:          registerRequest.Name,
		Email:         registerRequest.Email,
		Phone:         registerRequest.Phone,
		Password:      passwordHash,
		Role:          registerRequest.Role,
		JobPosition:   registerRequest.JobPosition,
		StructureUnit: registerRequest.StructureUnit,
	}

	if result := database.DB.Create(&user); result.Error != nil {
		log.Printf("Database error: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
		return
	}

	userID := user.ID
	database.RecordAudit(database.EventUserCreated, &userID, &userID, user.Name, c.ClientIP(), map[string]interface{}{
		"role":          user.Role,
		"structureUnit": user.StructureUnit,
		"method":        "self-registration",
	})

	expirationTime := time.Now().Add(config.GetJWTExpiration())
	token, err := utils.GenerateJWT(user.ID, user.Email, expirationTime)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
		return
	}

	c.JSON(http.StatusCreated, LoginResponse{
		Token:  token,
		User:   user,
		Expiry: expirationTime.Unix(),
	})
}
