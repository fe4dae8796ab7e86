package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/wneessen/go-mail"

	"velours_store_front/internal/models"
)

// SendConfirmationEmail envoie la confirmation de commande, avec la
// facture PDF en pièce jointe quand on a réussi à la générer
func SendConfirmationEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@velours.shop"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("facture_velours.pdf", bytes.NewReader(pdfAttachment))
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande
func GenerateOrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		label := item.Name
		if item.VariantLabel != "" {
			label += " (" + item.VariantLabel + ")"
		}
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f€</td>
				<td>%.2f€</td>
			</tr>`, label, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	discountHTML := ""
	if order.Discount > 0 {
		discountHTML = fmt.Sprintf(`<p>Réduction (%s) : -%.2f€</p>`, order.VoucherCode, order.Discount)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
	<h2>Merci pour votre commande !</h2>
	<p>Commande n° %s</p>
	<table border="1" cellpadding="6" cellspacing="0">
		<tr><th>Article</th><th>Qté</th><th>Prix</th><th>Sous-total</th></tr>
		%s
	</table>
	%s
	<h3>Total : %.2f€</h3>
	<p>Livraison à : %s</p>
</body>
</html>`, order.ID, itemsHTML, discountHTML, order.Total, order.Address)
}
