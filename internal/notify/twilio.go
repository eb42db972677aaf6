package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/config"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
)

var ErrSinTelefono = errors.New("el cliente no tiene teléfono")

// TwilioClient envía el código de referido por WhatsApp usando la API REST
// de Twilio.
type TwilioClient struct {
	accountSID    string
	authToken     string
	from          string
	baseURL       string
	countryPrefix string
	client        *http.Client
}

func NewTwilioClient(cfg config.TwilioConfig) *TwilioClient {
	return &TwilioClient{
		accountSID:    cfg.AccountSID,
		authToken:     cfg.AuthToken,
		from:          cfg.WhatsAppNumber,
		baseURL:       strings.TrimSuffix(cfg.BaseURL, "/"),
		countryPrefix: cfg.CountryPrefix,
		client:        &http.Client{Timeout: 15 * time.Second},
	}
}

func (t *TwilioClient) EnviarCodigoReferido(ctx context.Context, cliente *model.Cliente, restaurante *model.Restaurante) error {
	if cliente.Telefono == nil || *cliente.Telefono == "" {
		return ErrSinTelefono
	}

	form := url.Values{}
	form.Set("From", t.from)
	form.Set("To", "whatsapp:"+t.normalizar(*cliente.Telefono))
	form.Set("Body", mensajeBienvenida(cliente, restaurante))

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", t.baseURL, t.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("twilio returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (t *TwilioClient) normalizar(telefono string) string {
	if strings.HasPrefix(telefono, "+") {
		return telefono
	}
	return t.countryPrefix + telefono
}
