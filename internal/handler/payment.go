package handler

import (
	"bytes"
	"html/template"
	"net/http"

	"apparel-shopfront/internal/dto"
	"apparel-shopfront/internal/middleware"
	"apparel-shopfront/internal/model"
	"apparel-shopfront/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// returnPageData feeds the landing templates. DisplayAmount is the
// gateway amount divided by 100 (VNPAY reports minor units).
type returnPageData struct {
	Succeeded     bool
	Verified      bool
	OrderRef      string
	DisplayAmount string
	ResponseCode  string
	BankCode      string
	TransactionNo string
	PayDate       string
}

// HandleReturn lands the browser after the gateway redirects back. The
// raw query set is forwarded for verification; whatever the outcome, the
// user gets a page with a path forward, never an error screen.
func (h *PaymentHandler) HandleReturn(c echo.Context) error {
	params := c.QueryParams()
	if len(params) == 0 {
		// nothing from the gateway, go home
		return c.Redirect(http.StatusFound, "/")
	}

	verdict := h.paymentService.VerifyReturn(c.Request().Context(), params)

	data := returnPageData{
		Succeeded:     verdict.Succeeded(),
		Verified:      verdict.Verified,
		OrderRef:      verdict.Param(model.VnpParamTxnRef),
		DisplayAmount: displayAmount(verdict.Param(model.VnpParamAmount)),
		ResponseCode:  verdict.ResponseCode,
		BankCode:      verdict.Param(model.VnpParamBankCode),
		TransactionNo: verdict.Param(model.VnpParamTransactionNo),
		PayDate:       verdict.Param(model.VnpParamPayDate),
	}

	var buf bytes.Buffer
	if err := returnPage.Execute(&buf, data); err != nil {
		return err
	}
	return c.HTML(http.StatusOK, buf.String())
}

// HandleResult is the second, status-only landing form: no verification
// call, just the gateway's response code and order reference.
func (h *PaymentHandler) HandleResult(c echo.Context) error {
	code := c.QueryParam(model.VnpParamResponseCode)
	orderRef := c.QueryParam(model.VnpParamTxnRef)
	if code == "" && orderRef == "" {
		return c.Redirect(http.StatusFound, "/")
	}

	data := returnPageData{
		Succeeded:     code == model.VnpSuccessCode,
		OrderRef:      orderRef,
		ResponseCode:  code,
		TransactionNo: c.QueryParam(model.VnpParamTransactionNo),
	}

	var buf bytes.Buffer
	if err := resultPage.Execute(&buf, data); err != nil {
		return err
	}
	return c.HTML(http.StatusOK, buf.String())
}

// PayAgain hands out a fresh gateway URL for a pending gateway order.
func (h *PaymentHandler) PayAgain(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	orderID, err := pathID(c, "orderId")
	if err != nil {
		return err
	}

	payURL, err := h.paymentService.PayAgain(c.Request().Context(), sess, orderID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.PayURLResponse{PayURL: payURL})
}

func displayAmount(raw string) string {
	if raw == "" {
		return ""
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return raw
	}
	return amount.Div(decimal.NewFromInt(100)).StringFixed(0) + " ₫"
}

var returnPage = template.Must(template.New("vnpay-return").Parse(`<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>VNPAY payment result</title>
	<style>
		body { font-family: Arial, sans-serif; max-width: 640px; margin: 80px auto; }
		.card { border: 1px solid #ccc; border-radius: 8px; padding: 24px; }
		.ok { color: #15803d; } .warn { color: #b45309; }
		table { margin-top: 12px; font-size: 14px; }
		td { padding: 2px 12px 2px 0; }
		.btn { display: inline-block; margin: 16px 8px 0 0; padding: 10px 16px; font: inherit;
			border: 1px solid #888; border-radius: 6px; text-decoration: none; color: inherit;
			background: none; cursor: pointer; }
	</style>
</head>
<body>
	<div class="card">
	{{if .Succeeded}}
		<h2 class="ok">Payment successful</h2>
		<p>The order status updates once the gateway notification reaches our system.</p>
	{{else}}
		<h2 class="warn">Payment not confirmed</h2>
		<p>If you already paid, give the gateway notification a moment and check your
		orders. A pending order can be paid again from its detail page.</p>
	{{end}}
		<table>
			<tr><td>Order reference</td><td><b>{{.OrderRef}}</b></td></tr>
			{{if .DisplayAmount}}<tr><td>Amount</td><td>{{.DisplayAmount}}</td></tr>{{end}}
			<tr><td>Response code</td><td>{{.ResponseCode}}</td></tr>
			{{if .BankCode}}<tr><td>Bank</td><td>{{.BankCode}}</td></tr>{{end}}
			{{if .TransactionNo}}<tr><td>Gateway transaction</td><td>{{.TransactionNo}}</td></tr>{{end}}
			{{if .PayDate}}<tr><td>Paid at</td><td>{{.PayDate}}</td></tr>{{end}}
			<tr><td>Signature verified</td><td>{{.Verified}}</td></tr>
		</table>
		{{if and (not .Succeeded) .OrderRef}}<button class="btn" id="pay-again">Pay again</button>{{end}}
		<a class="btn" href="/orders">My orders</a>
		<a class="btn" href="/">Home</a>
	</div>
	{{if and (not .Succeeded) .OrderRef}}
	<script>
	document.getElementById("pay-again").addEventListener("click", function () {
		fetch("/api/payments/pay-again/{{.OrderRef}}", { method: "POST" })
			.then(function (res) { return res.json(); })
			.then(function (body) {
				if (body.payUrl) { window.location.href = body.payUrl; }
			});
	});
	</script>
	{{end}}
</body>
</html>
`))

var resultPage = template.Must(template.New("vnpay-result").Parse(`<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>VNPAY payment result</title>
	<style>
		body { font-family: Arial, sans-serif; max-width: 560px; margin: 80px auto; }
		.card { border: 1px solid #ccc; border-radius: 8px; padding: 24px; }
		.ok { color: #15803d; } .warn { color: #b45309; }
		.btn { display: inline-block; margin: 16px 8px 0 0; padding: 10px 16px; font: inherit;
			border: 1px solid #888; border-radius: 6px; text-decoration: none; color: inherit;
			background: none; cursor: pointer; }
	</style>
</head>
<body>
	<div class="card">
	{{if .Succeeded}}
		<h2 class="ok">Payment successful</h2>
		<p>Order <b>#{{.OrderRef}}</b>{{if .TransactionNo}}, gateway transaction <b>{{.TransactionNo}}</b>{{end}}.</p>
	{{else}}
		<h2 class="warn">Payment not confirmed</h2>
		<p>Order <b>#{{.OrderRef}}</b>, response code <b>{{.ResponseCode}}</b>.
		You can retry the payment now or from the order detail page.</p>
	{{end}}
		{{if and (not .Succeeded) .OrderRef}}<button class="btn" id="pay-again">Pay again</button>{{end}}
		<a class="btn" href="/orders">My orders</a>
		<a class="btn" href="/">Home</a>
	</div>
	{{if and (not .Succeeded) .OrderRef}}
	<script>
	document.getElementById("pay-again").addEventListener("click", function () {
		fetch("/api/payments/pay-again/{{.OrderRef}}", { method: "POST" })
			.then(function (res) { return res.json(); })
			.then(function (body) {
				if (body.payUrl) { window.location.href = body.payUrl; }
			});
	});
	</script>
	{{end}}
</body>
</html>
`))
