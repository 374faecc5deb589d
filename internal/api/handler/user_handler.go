package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/repairshop/technotes-api/internal/core/domain"
	"github.com/repairshop/technotes-api/internal/core/ports"
)

// UserHandler handles the protected /users CRUD. All routes identify the
// target row through the request body, not the path. The existing clients
// depend on that contract.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns every user. An empty table is reported as a 400, not an
// empty array.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        x-auth-token  header  string  true  "Bearer token"
// @Success      200  {array}   domain.User
// @Failure      400  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoUsers) {
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "No users found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Create adds a user with an explicit role set.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        x-auth-token  header  string             true  "Bearer token"
// @Param        body          body    createUserRequest  true  "New user"
// @Success      201  {object}  domain.User
// @Failure      400  {object}  messageResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "All fields are required"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "All fields are required"})
	}

	user, err := h.userService.Create(c.Request().Context(), ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Roles:    req.Roles,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "All fields are required"})
		case errors.Is(err, domain.ErrUserExists):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "User already exists"})
		}
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Update applies a partial update. The row is confirmed to exist by email
// and patched by id, so both must belong to the same user.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        x-auth-token  header  string             true  "Bearer token"
// @Param        body          body    updateUserRequest  true  "Sparse patch, id required"
// @Success      201  {object}  domain.User
// @Success      200  {object}  messageResponse  "nothing to update"
// @Failure      400  {object}  messageResponse
// @Failure      409  {object}  messageResponse
// @Router       /users [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "User ID is required for update."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "User ID is required for update."})
	}

	user, err := h.userService.Update(c.Request().Context(), ports.UpdateUserInput{
		ID:       req.ID,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Roles:    req.Roles,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "User ID is required for update."})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "User doesn't exists"})
		case errors.Is(err, domain.ErrDuplicateName):
			return c.JSON(http.StatusConflict, messageResponse{Message: "Duplicate username"})
		case errors.Is(err, domain.ErrNoUpdateData):
			return c.JSON(http.StatusOK, messageResponse{Message: "No data provided for update."})
		case errors.Is(err, domain.ErrUserExists):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "User already exists"})
		}
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Delete removes a user unless notes still point at them.
//
// @Summary      Delete a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        x-auth-token  header  string             true  "Bearer token"
// @Param        body          body    deleteUserRequest  true  "Target id"
// @Success      200  {string}  string  "confirmation sentence"
// @Failure      400  {object}  messageResponse
// @Router       /users [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	var req deleteUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "User ID is required for delete a user."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "User ID is required for delete a user."})
	}

	user, err := h.userService.Delete(c.Request().Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "User ID is required for delete a user."})
		case errors.Is(err, domain.ErrUserHasNotes):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "User has assigned notes"})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "User not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, fmt.Sprintf("Username %s with ID %s deleted", user.Name, user.ID))
}
