package email

import "fmt"

// VerificationTemplate renders the signup verification email
func VerificationTemplate(code string) (subject, html string) {
	subject = "Laywill — Seu código de verificação"
	html = fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; line-height: 1.6">
			<h2>Confirme seu email no Laywill</h2>
			<p>Olá! Use este código para confirmar sua conta e começar a organizar as finanças do casal:</p>
			<div style="font-size: 28px; font-weight: 800; letter-spacing: 4px">%s</div>
			<p>Esse código expira em 10 minutos.</p>
			<p style="color: #666">Se você não solicitou este cadastro, ignore este email.</p>
		</div>
	`, code)
	return subject, html
}

// ResetPasswordTemplate renders the password reset email
func ResetPasswordTemplate(resetLink string) (subject, html string) {
	subject = "Laywill — Redefinir sua senha"
	html = fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; line-height: 1.6">
			<h2>Redefinição de senha no Laywill</h2>
			<p>Para criar uma nova senha, clique no link abaixo:</p>
			<p><a href="%s">Redefinir senha</a></p>
			<p>Esse link expira em 1 hora.</p>
			<p style="color: #666">Se você não solicitou isso, ignore este email.</p>
		</div>
	`, resetLink)
	return subject, html
}

// InviteTemplate renders the workspace invite email
func InviteTemplate(token, inviteLink string) (subject, html string) {
	subject = "Laywill — Convite para o workspace"
	html = fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; line-height: 1.6">
			<h2>Você foi convidado para um workspace no Laywill</h2>
			<p>Use o código abaixo no app, ou toque no link:</p>
			<div style="font-size: 28px; font-weight: 800; letter-spacing: 4px">%s</div>
			<p><a href="%s">Aceitar convite</a></p>
			<p style="color: #666">Se você não esperava este convite, ignore este email.</p>
		</div>
	`, token, inviteLink)
	return subject, html
}
