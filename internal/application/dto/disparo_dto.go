package dto

// DispararRequest body para POST /api/disparos. Só o id da cobrança é lido;
// qualquer outro campo enviado é ignorado.
type DispararRequest struct {
	Cobranca struct {
		ID string `json:"id"`
	} `json:"cobranca"`
}

// DisparoResponse desfecho do disparo com HTTP 200.
type DisparoResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// RelayError corpo de erro do relay ({"error": ...}), usado nos HTTP 4xx/5xx.
type RelayError struct {
	Error string `json:"error"`
}

// DisparadorResponse snapshot do painel de disparos.
type DisparadorResponse struct {
	Cobrancas []CobrancaResponse `json:"cobrancas"`
	Total     int                `json:"total"`
	Ativas    int                `json:"ativas"`
	Atrasadas int                `json:"atrasadas"`
}
