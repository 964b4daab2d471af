package enums

import "fmt"

// OrcamentoStatus is the quote lifecycle. The status strings are stored
// verbatim, in Portuguese, because the storefront and admin panel display
// them as-is.
type OrcamentoStatus string

const (
	OrcamentoAguardandoOrcamento OrcamentoStatus = "Aguardando Orçamento"
	OrcamentoAguardandoPagamento OrcamentoStatus = "Aguardando Pagamento"
	OrcamentoConvertidoEmPedido  OrcamentoStatus = "Convertido em Pedido"
	OrcamentoCancelado           OrcamentoStatus = "Cancelado"
)

var validOrcamentoStatuses = []OrcamentoStatus{
	OrcamentoAguardandoOrcamento,
	OrcamentoAguardandoPagamento,
	OrcamentoConvertidoEmPedido,
	OrcamentoCancelado,
}

// String implements fmt.Stringer.
func (s OrcamentoStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrcamentoStatus.
func (s OrcamentoStatus) IsValid() bool {
	for _, candidate := range validOrcamentoStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the quote can no longer change status.
func (s OrcamentoStatus) IsTerminal() bool {
	return s == OrcamentoConvertidoEmPedido || s == OrcamentoCancelado
}

// ParseOrcamentoStatus converts raw input into an OrcamentoStatus.
func ParseOrcamentoStatus(value string) (OrcamentoStatus, error) {
	for _, candidate := range validOrcamentoStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid orcamento status %q", value)
}
