package handler

import (
    "context"
    "log"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-reservation/internal/repository"
)

// FeedbackStore is the slice of the feedback repository the handlers need.
type FeedbackStore interface {
    Create(ctx context.Context, email, category, message string) error
    ListAll(ctx context.Context) ([]repository.FeedbackRow, error)
}

// FeedbackHandler accepts visitor feedback and lists it for admins.
type FeedbackHandler struct {
    Feedback FeedbackStore
}

func NewFeedbackHandler(feedback FeedbackStore) *FeedbackHandler {
    if feedback == nil {
        panic("nil feedback store passed to NewFeedbackHandler")
    }
    return &FeedbackHandler{Feedback: feedback}
}

type feedbackReq struct {
    Email    string `json:"email"`
    Category string `json:"category"`
    Message  string `json:"message"`
}

// Create handles POST /api/feedback.
func (h *FeedbackHandler) Create(c echo.Context) error {
    var req feedbackReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
    }
    if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Message) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "email/message required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Feedback.Create(ctx, req.Email, req.Category, req.Message); err != nil {
        log.Printf("feedback: create failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to submit feedback"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "feedback submitted successfully"})
}

// ListAll handles GET /api/admin/feedbacks (admin only).  Degrades to an
// empty list on storage failure.
func (h *FeedbackHandler) ListAll(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    feedbacks, err := h.Feedback.ListAll(ctx)
    if err != nil {
        log.Printf("feedback: list failed: %v", err)
        return c.JSON(http.StatusInternalServerError, []repository.FeedbackRow{})
    }
    return c.JSON(http.StatusOK, feedbacks)
}
