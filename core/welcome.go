package core

import (
	"context"
	"fmt"
	"strings"
)

type (
	// WelcomeRequest carries what is needed to compose a registration
	// welcome message.
	WelcomeRequest struct {
		GuardianName string
		StudentNames []string
	}

	// WelcomeService produces a short personalized message after a guardian
	// registers. Generation is best-effort: registration is already complete
	// by the time it runs, so implementations must swallow every failure and
	// return FallbackWelcomeMessage instead of an error.
	WelcomeService interface {
		Generate(ctx context.Context, req WelcomeRequest) string
	}
)

// WelcomePrompt builds the instruction sent to the text-generation API.
func WelcomePrompt(appName string, req WelcomeRequest) string {
	return fmt.Sprintf(
		"Você é o assistente virtual do app %q. "+
			"Gere uma mensagem de boas-vindas curta (máximo 2 linhas) e muito amigável "+
			"para o pai/mãe chamado(a) %s. Ele(a) acabou de cadastrar o(s) aluno(s): %s. "+
			"Mencione que a segurança da saída escolar ficou mais ágil com o %s.",
		appName, req.GuardianName, strings.Join(req.StudentNames, ", "), appName,
	)
}

// FallbackWelcomeMessage is the deterministic message used whenever
// generation fails or is disabled. Part of the contract, not polish.
func FallbackWelcomeMessage(appName string, req WelcomeRequest) string {
	return fmt.Sprintf(
		"Olá %s! Bem-vindo ao %s. O cadastro de %s foi realizado com sucesso.",
		req.GuardianName, appName, strings.Join(req.StudentNames, ", "),
	)
}
