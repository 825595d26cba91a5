// Package http exposes the order transition engine and customer account
// operations over a JSON API.
package http

import (
	"errors"
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	transitionHandler    commands.TransitionOrderCommandHandler
	registerHandler      commands.RegisterCustomerCommandHandler
	resetPasswordHandler commands.ResetPasswordCommandHandler

	getOrderHandler queries.GetOrderQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	transitionHandler commands.TransitionOrderCommandHandler,
	registerHandler commands.RegisterCustomerCommandHandler,
	resetPasswordHandler commands.ResetPasswordCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
) *Server {
	return &Server{
		transitionHandler:    transitionHandler,
		registerHandler:      registerHandler,
		resetPasswordHandler: resetPasswordHandler,
		getOrderHandler:      getOrderHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders/:orderNumber/transitions", s.TransitionOrder)
	api.GET("/orders/:orderNumber", s.GetOrder)
	api.POST("/customers", s.RegisterCustomer)
	api.POST("/customers/reset-password", s.ResetPassword)
}

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// TransitionRequest is the body of POST /orders/:orderNumber/transitions.
type TransitionRequest struct {
	Event          string            `json:"event"`
	DeliveryNumber string            `json:"deliveryNumber,omitempty"`
	Params         map[string]string `json:"params,omitempty"`
}

// TransitionResponse reports whether the event changed the order.
type TransitionResponse struct {
	Handled bool `json:"handled"`
}

// RegisterCustomerRequest is the body of POST /customers.
type RegisterCustomerRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Locale    string `json:"locale,omitempty"`
	ShopCode  string `json:"shopCode"`
}

// RegisterCustomerResponse returns the id assigned to the new customer.
type RegisterCustomerResponse struct {
	ID string `json:"id"`
}

// ResetPasswordRequest is the body of POST /customers/reset-password.
type ResetPasswordRequest struct {
	Email    string `json:"email"`
	ShopCode string `json:"shopCode"`
}

// OrderResponse is the read model of GET /orders/:orderNumber.
type OrderResponse struct {
	Number        string             `json:"number"`
	Status        string             `json:"status"`
	TotalAmount   int64              `json:"totalAmount"`
	TotalCurrency string             `json:"totalCurrency"`
	Deliveries    []DeliveryResponse `json:"deliveries"`
}

// DeliveryResponse is one delivery inside OrderResponse.
type DeliveryResponse struct {
	Number         string `json:"number"`
	Status         string `json:"status"`
	Carrier        string `json:"carrier,omitempty"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// TransitionOrder handles POST /api/v1/orders/:orderNumber/transitions.
// Applies a lifecycle event to the order. An event that is not legal from
// the order's current status is not an error; the response carries
// handled=false and the order is untouched.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderNumber := ctx.Param("orderNumber")

	var req TransitionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	event, err := order.NewTransitionEvent(req.Event, orderNumber, req.DeliveryNumber, req.Params)
	if err != nil {
		return badRequest(ctx, "Invalid transition event: "+err.Error())
	}

	cmd, err := commands.NewTransitionOrderCommand(event)
	if err != nil {
		return badRequest(ctx, "Invalid transition command: "+err.Error())
	}

	handled, err := s.transitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, err.Error())
		}
		return internalError(ctx, "Failed to apply transition")
	}

	return ctx.JSON(http.StatusOK, TransitionResponse{Handled: handled})
}

// GetOrder handles GET /api/v1/orders/:orderNumber.
func (s *Server) GetOrder(ctx echo.Context) error {
	query, err := queries.NewGetOrderQuery(ctx.Param("orderNumber"))
	if err != nil {
		return badRequest(ctx, "Invalid order number")
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, "Order not found")
		}
		return internalError(ctx, "Failed to retrieve order")
	}

	deliveries := make([]DeliveryResponse, len(result.Deliveries))
	for i, delivery := range result.Deliveries {
		deliveries[i] = DeliveryResponse{
			Number:         delivery.Number,
			Status:         delivery.Status.String(),
			Carrier:        delivery.Carrier,
			TrackingNumber: delivery.TrackingNumber,
		}
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		Number:        result.Number,
		Status:        result.Status.String(),
		TotalAmount:   result.TotalAmount,
		TotalCurrency: result.TotalCurrency,
		Deliveries:    deliveries,
	})
}

// RegisterCustomer handles POST /api/v1/customers.
func (s *Server) RegisterCustomer(ctx echo.Context) error {
	var req RegisterCustomerRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID := kernel.NewUUID()

	cmd, err := commands.NewRegisterCustomerCommand(
		customerID, req.Email, req.FirstName, req.LastName, req.Locale, req.ShopCode)
	if err != nil {
		return badRequest(ctx, "Invalid customer data: "+err.Error())
	}

	if err := s.registerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		switch {
		case errors.Is(err, commands.ErrCustomerAlreadyRegistered):
			return conflict(ctx, "Customer is already registered")
		case errors.Is(err, errs.ErrObjectNotFound):
			return notFound(ctx, "Shop not found")
		default:
			return internalError(ctx, "Failed to register customer")
		}
	}

	return ctx.JSON(http.StatusCreated, RegisterCustomerResponse{ID: customerID.String()})
}

// ResetPassword handles POST /api/v1/customers/reset-password.
func (s *Server) ResetPassword(ctx echo.Context) error {
	var req ResetPasswordRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewResetPasswordCommand(req.Email, req.ShopCode)
	if err != nil {
		return badRequest(ctx, "Invalid reset request: "+err.Error())
	}

	if err := s.resetPasswordHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, "Customer or shop not found")
		}
		return internalError(ctx, "Failed to reset password")
	}

	return ctx.NoContent(http.StatusAccepted)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: message})
}

func notFound(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusNotFound, ErrorResponse{Code: http.StatusNotFound, Message: message})
}

func conflict(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusConflict, ErrorResponse{Code: http.StatusConflict, Message: message})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Code: http.StatusInternalServerError, Message: message})
}
