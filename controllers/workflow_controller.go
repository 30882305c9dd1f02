package controllers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"reportflow/database"
)

// WorkflowRequest contains the data for workflow creation
type WorkflowRequest struct {
	Name          string   `json:"name" binding:"required"`
	ApprovalOrder []string `json:"approval_order" binding:"required"`
}

// WorkflowResponse is the serialized form of a workflow
type WorkflowResponse struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	ApprovalOrder []string `json:"approval_order"`
}

// CreateWorkflow creates a named ordered approval role sequence. Every step
// must be a member of the fixed role enum. Workflows are declarative; the
// report lifecycle does not yet walk them.
func CreateWorkflow(c *gin.Context) {
	var workflowRequest WorkflowRequest
	if err := c.ShouldBindJSON(&workflowRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": ValidationMessages(err)})
		return
	}

	var errs []string
	if len(workflowRequest.ApprovalOrder) == 0 {
		errs = append(errs, "approval_order must contain at least one role")
	}
	for i, role := range workflowRequest.ApprovalOrder {
		if !database.IsValidRole(role) {
			errs = append(errs, fmt.Sprintf("approval_order step %d: %q is not a defined role", i+1, role))
		}
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": errs})
		return
	}

	var count int64
	database.DB.Model(&database.Workflow{}).Where("name = ?", workflowRequest.Name).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "A workflow with this name already exists"})
		return
	}

	workflow := database.Workflow{Name: workflowRequest.Name}
	if err := workflow.SetApprovalOrder(workflowRequest.ApprovalOrder); err != nil {
		log.Printf("Error encoding approval order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating workflow"})
		return
	}

	if result := database.DB.Create(&workflow); result.Error != nil {
		log.Printf("Database error: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating workflow"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Workflow created successfully",
		"workflow": WorkflowResponse{
			ID:            workflow.ID,
			Name:          workflow.Name,
			ApprovalOrder: workflow.GetApprovalOrder(),
		},
	})
}

// GetWorkflows returns all configured workflows
func GetWorkflows(c *gin.Context) {
	var workflows []database.Workflow
	if err := database.DB.Order("created_at DESC").Find(&workflows).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching workflows"})
		return
	}

	responses := make([]WorkflowResponse, 0, len(workflows))
	for _, w := range workflows {
		responses = append(responses, WorkflowResponse{
			ID:            w.ID,
			Name:          w.Name,
			ApprovalOrder: w.GetApprovalOrder(),
		})
	}

	c.JSON(http.StatusOK, responses)
}
