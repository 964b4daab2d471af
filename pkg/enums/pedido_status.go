package enums

import "fmt"

// PedidoStatus is the order lifecycle, independent from the quote lifecycle.
type PedidoStatus string

const (
	PedidoEmProducao         PedidoStatus = "Em Produção"
	PedidoEnviado            PedidoStatus = "Enviado"
	PedidoProntoParaRetirada PedidoStatus = "Pronto para Retirada"
	PedidoEntregue           PedidoStatus = "Entregue"
	PedidoCancelado          PedidoStatus = "Cancelado"
)

var validPedidoStatuses = []PedidoStatus{
	PedidoEmProducao,
	PedidoEnviado,
	PedidoProntoParaRetirada,
	PedidoEntregue,
	PedidoCancelado,
}

// String implements fmt.Stringer.
func (s PedidoStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known PedidoStatus.
func (s PedidoStatus) IsValid() bool {
	for _, candidate := range validPedidoStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the order can no longer change status.
func (s PedidoStatus) IsTerminal() bool {
	return s == PedidoEntregue || s == PedidoCancelado
}

// ParsePedidoStatus converts raw input into a PedidoStatus.
func ParsePedidoStatus(value string) (PedidoStatus, error) {
	for _, candidate := range validPedidoStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pedido status %q", value)
}
