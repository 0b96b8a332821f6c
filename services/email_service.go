package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"caviste_server/documents"
	"caviste_server/structs"
	"caviste_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

type Email struct {
	From        string
	To          []string
	Subject     string
	Html        string
	Attachments []Attachment
}

// Mailer delivers one email. Implementations must be safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, email *Email) error
}

// ResendMailer sends through the Resend API.
type ResendMailer struct {
	client *resend.Client
}

func NewResendMailer(apiKey string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey)}
}

func (m *ResendMailer) Send(ctx context.Context, email *Email) error {
	params := &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.Html,
	}
	for _, a := range email.Attachments {
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Content:     a.Content,
			Filename:    a.Filename,
			ContentType: a.ContentType,
		})
	}

	_, err := m.client.Emails.SendWithContext(ctx, params)
	return err
}

// IssuedGiftCard pairs a persisted gift card line with its document.
// Document is nil when rendering failed.
type IssuedGiftCard struct {
	Line     *tables.OrderLine
	Document *documents.RenderedDocument
}

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	mailer Mailer
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config, mailer Mailer) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		mailer: mailer,
	}
}

func (es *EmailService) send(ctx context.Context, category string, to []string, subject, body string, docs ...*documents.RenderedDocument) error {
	email := &Email{
		From:    es.cfg.Email.From,
		To:      to,
		Subject: subject,
		Html:    body,
	}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		email.Attachments = append(email.Attachments, Attachment{
			Filename:    doc.Filename,
			ContentType: doc.ContentType,
			Content:     doc.Content,
		})
	}

	err := es.mailer.Send(ctx, email)
	recordEmail(category, err)
	if err != nil {
		es.logger.Error("Failed to send email",
			gecho.Field("category", category),
			gecho.Field("to", to),
			gecho.Field("error", err),
		)
		return fmt.Errorf("send %s email: %w", category, err)
	}

	es.logger.Debug("Email sent",
		gecho.Field("category", category),
		gecho.Field("to", to),
		gecho.Field("attachments", len(email.Attachments)),
	)
	return nil
}

func documentsOf(cards []IssuedGiftCard) []*documents.RenderedDocument {
	docs := make([]*documents.RenderedDocument, 0, len(cards))
	for _, c := range cards {
		if c.Document != nil {
			docs = append(docs, c.Document)
		}
	}
	return docs
}

// SendGiftCardSellerNotification summarizes a whole gift card batch to the shop inbox.
func (es *EmailService) SendGiftCardSellerNotification(ctx context.Context, order *tables.Order, cards []IssuedGiftCard) error {
	var rows strings.Builder
	for _, c := range cards {
		status := "PDF joint"
		if c.Document == nil {
			status = "PDF non généré"
		}
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			html.EscapeString(c.Line.RecipientName),
			html.EscapeString(documents.FormatAmount(c.Line.UnitPrice, es.cfg.Shop.Currency)),
			html.EscapeString(c.Line.GiftCardId),
			html.EscapeString(c.Line.RecipientEmail),
			status,
		)
	}

	body := es.layout("Nouvelle commande de cartes cadeaux", fmt.Sprintf(`
		<p>Commande <strong>%s</strong> (%s)</p>
		<p>Acheteur : %s %s</p>
		<p>Livraison : %s | Paiement : %s</p>
		<p>Commentaires : %s</p>
		<table>
			<tr><th>Destinataire</th><th>Montant</th><th>Code</th><th>Email</th><th>Document</th></tr>
			%s
		</table>
		<p><strong>Total : %s</strong></p>`,
		html.EscapeString(order.OrderNumber),
		html.EscapeString(string(order.Status)),
		html.EscapeString(order.BuyerName),
		html.EscapeString(order.BuyerEmail),
		html.EscapeString(string(order.DeliveryMode)),
		html.EscapeString(string(order.PaymentMode)),
		html.EscapeString(order.Comments),
		rows.String(),
		html.EscapeString(documents.FormatAmount(order.Total, es.cfg.Shop.Currency)),
	))

	subject := fmt.Sprintf("Commande %s : %d carte(s) cadeau", order.OrderNumber, len(cards))
	return es.send(ctx, "seller", []string{es.cfg.Email.SellerEmail}, subject, body, documentsOf(cards)...)
}

// SendGiftCardBuyerConfirmation sends the buyer every rendered card of the batch.
func (es *EmailService) SendGiftCardBuyerConfirmation(ctx context.Context, order *tables.Order, cards []IssuedGiftCard) error {
	var items strings.Builder
	for _, c := range cards {
		fmt.Fprintf(&items, "<li>%s : %s</li>",
			html.EscapeString(c.Line.RecipientName),
			html.EscapeString(documents.FormatAmount(c.Line.UnitPrice, es.cfg.Shop.Currency)),
		)
	}

	body := es.layout("Merci pour votre commande !", fmt.Sprintf(`
		<p>Bonjour %s,</p>
		<p>Votre commande <strong>%s</strong> a bien été enregistrée. Vous trouverez vos cartes cadeaux en pièce jointe.</p>
		<ul>%s</ul>
		<p><strong>Total : %s</strong></p>`,
		html.EscapeString(order.BuyerName),
		html.EscapeString(order.OrderNumber),
		items.String(),
		html.EscapeString(documents.FormatAmount(order.Total, es.cfg.Shop.Currency)),
	))

	subject := fmt.Sprintf("Vos cartes cadeaux %s", es.cfg.Shop.Name)
	return es.send(ctx, "buyer", []string{order.BuyerEmail}, subject, body, documentsOf(cards)...)
}

// SendGiftCardToRecipient sends one card to the person it is offered to.
func (es *EmailService) SendGiftCardToRecipient(ctx context.Context, order *tables.Order, card IssuedGiftCard) error {
	if card.Document == nil {
		return errors.New("gift card has no document")
	}

	from := order.BuyerName
	if from == "" {
		from = es.cfg.Shop.Name
	}

	body := es.layout("Vous avez reçu une carte cadeau", fmt.Sprintf(`
		<p>Bonjour %s,</p>
		<p>%s vous offre une carte cadeau de <strong>%s</strong> à utiliser chez %s.</p>
		<p>Présentez la carte jointe en boutique. Code : %s</p>`,
		html.EscapeString(card.Line.RecipientName),
		html.EscapeString(from),
		html.EscapeString(documents.FormatAmount(card.Line.UnitPrice, es.cfg.Shop.Currency)),
		html.EscapeString(es.cfg.Shop.Name),
		html.EscapeString(card.Line.GiftCardId),
	))

	subject := fmt.Sprintf("Une carte cadeau %s pour vous", es.cfg.Shop.Name)
	return es.send(ctx, "recipient", []string{card.Line.RecipientEmail}, subject, body, card.Document)
}

// SendGiftCard delivers an already issued card to an arbitrary address.
func (es *EmailService) SendGiftCard(ctx context.Context, to string, card IssuedGiftCard) error {
	body := es.layout("Votre carte cadeau", fmt.Sprintf(`
		<p>Bonjour,</p>
		<p>Veuillez trouver ci-joint la carte cadeau de <strong>%s</strong> offerte à %s.</p>
		<p>Code : %s</p>`,
		html.EscapeString(documents.FormatAmount(card.Line.UnitPrice, es.cfg.Shop.Currency)),
		html.EscapeString(card.Line.RecipientName),
		html.EscapeString(card.Line.GiftCardId),
	))

	return es.send(ctx, "resend", []string{to}, "Votre carte cadeau "+es.cfg.Shop.Name, body, card.Document)
}

func (es *EmailService) orderLinesHTML(order *tables.Order) string {
	var items strings.Builder
	for _, line := range order.Lines {
		fmt.Fprintf(&items, "<li>%dx %s - %s</li>",
			line.Quantity,
			html.EscapeString(line.ProductName),
			html.EscapeString(documents.FormatAmount(line.LineTotal(), es.cfg.Shop.Currency)),
		)
	}
	return items.String()
}

// SendCheckoutSellerNotification tells the shop about a cart order.
func (es *EmailService) SendCheckoutSellerNotification(ctx context.Context, order *tables.Order) error {
	body := es.layout("Nouvelle commande", fmt.Sprintf(`
		<p>Commande <strong>%s</strong></p>
		<p>Client : %s %s</p>
		<p>Livraison : %s | Paiement : %s</p>
		<p>Commentaires : %s</p>
		<ul>%s</ul>
		<p>Frais de port : %s</p>
		<p><strong>Total : %s</strong></p>`,
		html.EscapeString(order.OrderNumber),
		html.EscapeString(order.BuyerName),
		html.EscapeString(order.BuyerEmail),
		html.EscapeString(string(order.DeliveryMode)),
		html.EscapeString(string(order.PaymentMode)),
		html.EscapeString(order.Comments),
		es.orderLinesHTML(order),
		html.EscapeString(documents.FormatAmount(order.ShippingFee, es.cfg.Shop.Currency)),
		html.EscapeString(documents.FormatAmount(order.Total, es.cfg.Shop.Currency)),
	))

	return es.send(ctx, "checkout-seller", []string{es.cfg.Email.SellerEmail}, "Nouvelle commande "+order.OrderNumber, body)
}

// SendCheckoutConfirmation confirms a cart order to the customer.
func (es *EmailService) SendCheckoutConfirmation(ctx context.Context, order *tables.Order) error {
	payment := "Le règlement se fait en boutique au retrait de votre commande."
	if order.PaymentMode == tables.PaymentModeBankTransfer {
		payment = fmt.Sprintf("Merci d'effectuer un virement en indiquant la référence %s.", html.EscapeString(order.OrderNumber))
	}

	body := es.layout("Merci pour votre commande !", fmt.Sprintf(`
		<p>Bonjour %s,</p>
		<p>Votre commande <strong>%s</strong> a bien été reçue.</p>
		<ul>%s</ul>
		<p>Frais de port : %s</p>
		<p><strong>Total : %s</strong></p>
		<p>%s</p>
		<p>Une question ? Écrivez-nous à %s</p>`,
		html.EscapeString(order.BuyerName),
		html.EscapeString(order.OrderNumber),
		es.orderLinesHTML(order),
		html.EscapeString(documents.FormatAmount(order.ShippingFee, es.cfg.Shop.Currency)),
		html.EscapeString(documents.FormatAmount(order.Total, es.cfg.Shop.Currency)),
		payment,
		html.EscapeString(es.cfg.Email.SupportEmail),
	))

	return es.send(ctx, "checkout-buyer", []string{order.BuyerEmail}, "Votre commande "+order.OrderNumber, body)
}

func (es *EmailService) layout(title, content string) string {
	return fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Georgia, serif; line-height: 1.6; color: #28211e; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #721c2c; color: #fdf9f0; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #fdf9f0; }
				.footer { text-align: center; padding: 20px; color: #6e645f; font-size: 12px; }
				table { width: 100%%; border-collapse: collapse; }
				td, th { padding: 4px; border-bottom: 1px solid #c8beaf; text-align: left; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header"><h1>%s</h1></div>
				<div class="content">%s</div>
				<div class="footer"><p><a href="%s">%s</a></p></div>
			</div>
		</body>
		</html>
	`, html.EscapeString(title), content, html.EscapeString(es.cfg.Shop.WebsiteURL), html.EscapeString(es.cfg.Shop.Name))
}
