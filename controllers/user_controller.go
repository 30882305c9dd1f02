package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"reportflow/database"
	"reportflow/utils"
)

// UserRequest contains the data for admin user create/update. Password is
// optional on update; when present it is re-hashed.
type UserRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password"`
	Phone         string `json:"phone" binding:"required"`
	Role          string `json:"role" binding:"required"`
	JobPosition   string `json:"job_position" binding:"required"`
	StructureUnit string `json:"structure_unit" binding:"required"`
}

// ChangePasswordRequest contains the data for a self-service password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

func validateUserEnums(req *UserRequest) []string {
	var errs []string
	if !database.IsValidRole(req.Role) {
		errs = append(errs, "role must be one of the defined roles")
	}
	if !database.IsValidStructureUnit(req.StructureUnit) {
		errs = append(errs, "structure_unit must be a known structure unit")
	}
	return errs
}

// GetUsers returns all users; passwords are never serialized
func GetUsers(c *gin.Context) {
	var users []database.User
	if err := database.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUserProfile returns the profile of the authenticated user
func GetUserProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user database.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateUser creates a user on behalf of an admin
func CreateUser(c *gin.Context) {
	actorID, _ := currentUserID(c)
	actorName := currentString(c, "name")

	var userRequest UserRequest
	if err := c.ShouldBindJSON(&userRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": ValidationMessages(err)})
		return
	}

	errs := validateUserEnums(&userRequest)
	if userRequest.Password == "" {
		errs = append(errs, "password is required")
	} else if len(userRequest.Password) < 6 {
		errs = append(errs, "password must be at least 6 characters")
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": errs})
		return
	}

	var count int64
	database.DB.Model(&database.User{}).Where("email = ?", userRequest.Email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		return
	}

	database.DB.Model(&database.User{}).Where("phone = ?", userRequest.Phone).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Phone number already exists"})
		return
	}

	passwordHash, err := utils.HashPassword(userRequest.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
		return
	}

	user := database.User{
		Name:          userRequest.Name,
		Email:         userRequest.Email,
		Password:      passwordHash,
		Phone:         userRequest.Phone,
		Role:          userRequest.Role,
		JobPosition:   userRequest.JobPosition,
		StructureUnit: userRequest.StructureUnit,
	}

	if result := database.DB.Create(&user); result.Error != nil {
		log.Printf("Database error: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
		return
	}

	targetID := user.ID
	database.RecordAudit(database.EventUserCreated, &actorID, &targetID, actorName, c.ClientIP(), map[string]interface{}{
		"targetName": user.Name,
		"role":       user.Role,
	})

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user_id": user.ID})
}

// UpdateUser updates a user on behalf of an admin. A role change appends
// exactly one ROLE_CHANGE audit entry; saving the same role appends none.
func UpdateUser(c *gin.Context) {
	actorID, _ := currentUserID(c)
	actorName := currentString(c, "name")

	var userRequest UserRequest
	if err := c.ShouldBindJSON(&userRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": ValidationMessages(err)})
		return
	}

	errs := validateUserEnums(&userRequest)
	if userRequest.Password != "" && len(userRequest.Password) < 6 {
		errs = append(errs, "password must be at least 6 characters")
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": errs})
		return
	}

	targetUserID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var user database.User
	if err := database.DB.First(&user, targetUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	var count int64
	if userRequest.Email != user.Email {
		database.DB.Model(&database.User{}).Where("email = ? AND id <> ?", userRequest.Email, user.ID).Count(&count)
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already in use by another user."})
			return
		}
	}
	if userRequest.Phone != user.Phone {
		database.DB.Model(&database.User{}).Where("phone = ? AND id <> ?", userRequest.Phone, user.ID).Count(&count)
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Phone number already in use by another user."})
			return
		}
	}

	oldRole := user.Role

	user.Name = userRequest.Name
	user.Email = userRequest.Email
	user.Phone = userRequest.Phone
	user.Role = userRequest.Role
	user.JobPosition = userRequest.JobPosition
	user.StructureUnit = userRequest.StructureUnit

	if userRequest.Password != "" {
		passwordHash, err := utils.HashPassword(userRequest.Password)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating user"})
			return
		}
		user.Password = passwordHash
	}

	if err := database.DB.Save(&user).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating user"})
		return
	}

	if oldRole != user.Role {
		targetID := user.ID
		database.RecordAudit(database.EventRoleChange, &actorID, &targetID, actorName, c.ClientIP(), map[string]interface{}{
			"oldRole":    oldRole,
			"newRole":    user.Role,
			"targetName": user.Name,
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user_id": user.ID})
}

// DeleteUser removes a user on behalf of an admin
func DeleteUser(c *gin.Context) {
	actorID, _ := currentUserID(c)
	actorName := currentString(c, "name")

	targetUserID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var user database.User
	if err := database.DB.First(&user, targetUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	// Hard delete so the unique email/phone can be registered again later.
	if err := database.DB.Unscoped().Delete(&user).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting user"})
		return
	}

	targetID := user.ID
	database.RecordAudit(database.EventUserDeleted, &actorID, &targetID, actorName, c.ClientIP(), map[string]interface{}{
		"targetName": user.Name,
		"email":      user.Email,
	})

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully", "user_id": user.ID})
}

// ChangePassword changes the authenticated user's own password
func ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var changeRequest ChangePasswordRequest
	if err := c.ShouldBindJSON(&changeRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": ValidationMessages(err)})
		return
	}

	var user database.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	if !utils.CheckPasswordHash(changeRequest.OldPassword, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	passwordHash, err := utils.HashPassword(changeRequest.NewPassword)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error changing password"})
		return
	}

	user.Password = passwordHash
	if err := database.DB.Save(&user).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error changing password"})
		return
	}

	selfID := user.ID
	database.RecordAudit(database.EventPasswordResetSuccess, &selfID, &selfID, user.Name, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
