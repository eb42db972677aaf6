package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/config"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/repository"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/service"
)

// Bot avisa al personal del restaurante cuando un cliente alcanza el umbral
// de un premio. Cada restaurante vincula su chat con /vincular <token>.
type Bot struct {
	bot  *tele.Bot
	repo *repository.Repository
	log  *zap.Logger
}

func NewBot(cfg *config.Config, repo *repository.Repository, log *zap.Logger) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Telegram.BotToken,
		Poller: &tele.LongPoller{Timeout: 60 * time.Second},
	}

	bot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b := &Bot{bot: bot, repo: repo, log: log}
	b.registerHandlers()

	return b, nil
}

func (b *Bot) registerHandlers() {
	b.bot.Handle("/start", b.handleStart)
	b.bot.Handle("/vincular", b.handleVincular)
	b.bot.Handle("/ayuda", b.handleAyuda)
}

func (b *Bot) StartPolling(ctx context.Context) {
	go func() {
		<-ctx.Done()
		b.bot.Stop()
	}()
	b.bot.Start()
}

func (b *Bot) handleStart(c tele.Context) error {
	return c.Send("¡Hola! Soy el asistente de premios.\n" +
		"Vincula el chat de tu restaurante con:\n/vincular <token de API>")
}

func (b *Bot) handleAyuda(c tele.Context) error {
	return c.Send("Comandos:\n" +
		"/vincular <token> - recibir avisos de premios en este chat\n" +
		"/ayuda - esta ayuda")
}

func (b *Bot) handleVincular(c tele.Context) error {
	token := strings.TrimSpace(c.Message().Payload)
	if token == "" {
		return c.Send("Uso: /vincular <token de API>")
	}

	ctx := context.Background()
	rest, err := b.repo.GetRestauranteByTokenHash(ctx, service.HashToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrRestauranteNotFound) {
			return c.Send("Token inválido")
		}
		b.log.Error("no se pudo vincular el chat", zap.Error(err))
		return c.Send("Error al vincular el chat, intenta de nuevo")
	}

	if err := b.repo.SetRestauranteChatID(ctx, rest.ID, c.Chat().ID); err != nil {
		b.log.Error("no se pudo guardar el chat", zap.Error(err))
		return c.Send("Error al vincular el chat, intenta de nuevo")
	}

	return c.Send(fmt.Sprintf("Chat vinculado a %s. Avisaré aquí cada premio alcanzado.", rest.Nombre))
}

// NotificarValidacion implementa service.StaffNotifier.
func (b *Bot) NotificarValidacion(ctx context.Context, v model.ValidacionDetalle) {
	rest, err := b.repo.GetRestaurante(ctx, v.ClienteRestauranteID)
	if err != nil {
		b.log.Warn("restaurante de la validación no encontrado", zap.Error(err))
		return
	}
	if rest.TelegramChatID == nil {
		return
	}

	msg := fmt.Sprintf("🏆 %s alcanzó el premio \"%s\" (%d/%d referidos confirmados). Revísalo en Validaciones.",
		v.ClienteNombre, v.PremioDescripcion, v.ConversionesRealizadas, v.PremioUmbral)
	if _, err := b.bot.Send(&tele.Chat{ID: *rest.TelegramChatID}, msg); err != nil {
		b.log.Warn("no se pudo enviar el aviso de premio", zap.Error(err))
	}
}
