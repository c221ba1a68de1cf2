package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// Lifecycle notifications (order status, investment confirmed/completed,
// project updates) are fire-and-forget: a failed send is logged and never
// fails the operation that triggered it.

func smtpConfigured() bool {
	return os.Getenv("SMTP_HOST") != "" && os.Getenv("SMTP_FROM") != ""
}

func sendMail(to []string, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	from := os.Getenv("SMTP_FROM")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")

	msg := strings.Builder{}
	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, pass, host)
	}
	return smtp.SendMail(host+":"+port, auth, from, to, []byte(msg.String()))
}

// NotifyAsync sends an email in the background, logging failures only.
func NotifyAsync(to string, subject, body string) {
	if to == "" || !smtpConfigured() {
		return
	}
	go func() {
		if err := sendMail([]string{to}, subject, body); err != nil {
			log.Printf("[mail] send to %s failed: %v", to, err)
		}
	}()
}

// NotifyInvestmentConfirmed emails an investor that payment was verified.
func NotifyInvestmentConfirmed(email, name, projectName string, units int, totalAmount float64) {
	subject := fmt.Sprintf("Investment confirmed - %s", projectName)
	body := fmt.Sprintf("Dear %s,\n\nYour investment of %d unit(s) (%.2f BDT) in %s has been confirmed.\n\nThank you for funding with KrishiBazar.",
		name, units, totalAmount, projectName)
	NotifyAsync(email, subject, body)
}

// NotifyInvestmentCompleted emails an investor their return has been paid out.
func NotifyInvestmentCompleted(email, name, projectName string, returnAmount float64) {
	subject := fmt.Sprintf("Investment completed - %s", projectName)
	body := fmt.Sprintf("Dear %s,\n\nYour investment in %s is complete. A return of %.2f BDT has been recorded for you.\n\nThank you for funding with KrishiBazar.",
		name, projectName, returnAmount)
	NotifyAsync(email, subject, body)
}

// NotifyOrderStatus emails a customer about an order status change.
func NotifyOrderStatus(email string, orderID uint, productName, orderStatus, paymentStatus string) {
	label := orderStatus
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}
	subject := fmt.Sprintf("Order #%d - %s", orderID, label)
	body := fmt.Sprintf("Your order #%d (%s) is now %s. Payment status: %s.",
		orderID, productName, orderStatus, paymentStatus)
	NotifyAsync(email, subject, body)
}

// NotifyProjectUpdate emails a confirmed investor about a published progress report.
func NotifyProjectUpdate(email, name, projectName, title, description string) {
	subject := fmt.Sprintf("Project Update: %s", projectName)
	body := fmt.Sprintf("Dear %s,\n\n%s\n\n%s", name, title, description)
	NotifyAsync(email, subject, body)
}
