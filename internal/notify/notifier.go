package notify

import (
	"context"
	"fmt"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
)

// Notifier entrega el código de referido a un cliente recién registrado.
// El llamador trata cualquier fallo como no fatal.
type Notifier interface {
	EnviarCodigoReferido(ctx context.Context, cliente *model.Cliente, restaurante *model.Restaurante) error
}

func mensajeBienvenida(cliente *model.Cliente, restaurante *model.Restaurante) string {
	return fmt.Sprintf(
		"¡Hola %s! 🎉\n\nBienvenido a %s.\n\nTu código de referido es: *%s*\n\n"+
			"Comparte este código con tus amigos y gana premios increíbles cuando consuman en nuestro restaurante.\n\n¡Gracias por unirte!",
		cliente.Nombre, restaurante.Nombre, cliente.CodigoReferido)
}
