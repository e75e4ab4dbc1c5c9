package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/smtp"
	"os"
	"strconv"

	"github.com/jordan-wright/email"
	"gopkg.in/gomail.v2"
)

// OrderMailData dữ liệu cho template email đơn hàng
type OrderMailData struct {
	OrderNo      string
	Fullname     string
	Products     string
	TotalAmount  string
	Currency     string
	PaymentRef   string
	RefundAmount string
}

// SendOrderConfirmationEmail gửi email xác nhận đơn hàng (async),
// nhúng QR chứa orderNo để đối chiếu khi giao hàng
func SendOrderConfirmationEmail(to string, data OrderMailData) {
	go func() { // Async để không delay response
		tmplPath := "templates/order_confirmation.html"
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			log.Printf("Lỗi load template email: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("Lỗi render template email: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		port, _ := strconv.Atoi(portStr)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Order confirmed #"+data.OrderNo)
		m.SetBody("text/html", body.String())

		qrBytes, err := GenerateQRCode(data.OrderNo, 400)
		if err == nil {
			m.Embed("qr_order.png", gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(qrBytes)
				return err
			}), gomail.SetHeader(map[string][]string{
				"Content-Type":        {"image/png"},
				"Content-ID":          {"<qr_order_code>"},
				"Content-Disposition": {"inline"},
			}))
		} else {
			log.Printf("Lỗi tạo QR cho đơn %s: %v", data.OrderNo, err)
		}

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Lỗi gửi email: %v", err)
		}
	}()
}

// SendOrderCancelledEmail báo khách đơn đã huỷ kèm số tiền refund
func SendOrderCancelledEmail(to string, data OrderMailData) {
	go func() {
		tmplPath := "templates/order_cancelled.html"
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			log.Printf("Lỗi load template huỷ đơn: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("Lỗi render template huỷ đơn: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

		m := gomail.NewMessage()
		m.SetHeader("From", os.Getenv("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", fmt.Sprintf("Order cancelled - #%s", data.OrderNo))
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Lỗi gửi email huỷ đơn cho %s: %v", to, err)
		}
	}()
}

// SendRefundProgressEmail: mail text đơn giản báo tiến độ refund
func SendRefundProgressEmail(to string, refundId uint, progress string) {
	go func() {
		e := email.NewEmail()
		e.From = os.Getenv("SMTP_FROM")
		e.To = []string{to}
		e.Subject = fmt.Sprintf("Refund #%d update", refundId)
		e.Text = []byte(fmt.Sprintf("Your refund request #%d is now: %s", refundId, progress))

		host := os.Getenv("SMTP_HOST")
		addr := host + ":" + os.Getenv("SMTP_PORT")
		auth := smtp.PlainAuth("", os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"), host)
		if err := e.Send(addr, auth); err != nil {
			log.Printf("Lỗi gửi email refund cho %s: %v", to, err)
		}
	}()
}
