package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/shop-bot/internal/config"
	"github.com/nguyentranbao-ct/shop-bot/internal/repo/telegram"
	"github.com/nguyentranbao-ct/shop-bot/internal/usecase"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

type Controller interface {
	HandleUpdate(c echo.Context) error
	Health(c echo.Context) error
}

type controller struct {
	botUsecase    usecase.BotUsecase
	webhookSecret string
}

func NewController(conf *config.Config, botUsecase usecase.BotUsecase) Controller {
	return &controller{
		botUsecase:    botUsecase,
		webhookSecret: conf.Telegram.WebhookSecret,
	}
}

func (h *controller) HandleUpdate(c echo.Context) error {
	if h.webhookSecret != "" {
		token := c.Request().Header.Get(secretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(token), []byte(h.webhookSecret)) != 1 {
			return echo.NewHTTPError(http.StatusUnauthorized, "bad secret token")
		}
	}

	var update telegram.Update
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	if err := h.botUsecase.HandleUpdate(ctx, &update); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "success",
	})
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "shop-bot",
	})
}
