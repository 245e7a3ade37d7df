// Package addendum builds supplementary agreement documents for a deal:
// contract details from the client roster, product and location texts
// from the dictionaries, quantities and prices spelled out in words.
package addendum

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
	"unicode"
	"unicode/utf8"

	"fjacquet/fueldesk/internal/logging"
	"fjacquet/fueldesk/internal/roster"
)

// DocumentType selects the agreement template.
type DocumentType string

const (
	// Prepayment is the full prepayment agreement.
	Prepayment DocumentType = "prepayment"
	// DeferredPayment is the agreement with a payment deferral.
	DeferredPayment DocumentType = "deferment_pay"
)

// DeliveryMethod is how the goods change hands.
type DeliveryMethod string

const (
	Pickup   DeliveryMethod = "самовывоз"
	Delivery DeliveryMethod = "доставка"
	Depot    DeliveryMethod = "нефтебаза"
)

// basisTexts are the contract basis clauses per delivery method.
var basisTexts = map[DeliveryMethod]string{
	Pickup:   "франко-автотранспортное средство Покупателя на складе Поставщика.",
	Delivery: "франко-автотранспортное средство Поставщика на складе Покупателя.",
	Depot:    "франко-автотранспортное средство Покупателя на складе Поставщика.",
}

var monthsGenitive = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

var monthsPrepositional = [...]string{
	"январе", "феврале", "марте", "апреле", "мае", "июне",
	"июле", "августе", "сентябре", "октябре", "ноябре", "декабре",
}

// Dictionaries hold the lookup tables the agreement text draws from,
// keyed by lowercase short name.
type Dictionaries struct {
	// Products maps a product key to its full contract name.
	Products map[string]string `yaml:"products"`
	// Locations maps a pickup point to its full address.
	Locations map[string]string `yaml:"locations"`
	// Depots maps an oil depot name to its full address.
	Depots map[string]string `yaml:"depots"`
}

// Request describes one agreement to generate.
type Request struct {
	AddendumNo  string
	ClientKey   string
	ProductKey  string
	PricePerTon int
	Tons        int
	PayDate     time.Time
	Method      DeliveryMethod
	// PickupLocation names the pickup point, used when Method is Pickup.
	PickupLocation string
	// DeliveryAddress is the free-form address, used when Method is
	// Delivery.
	DeliveryAddress string
	// DepotName names the oil depot, used when Method is Depot.
	DepotName string
	Type      DocumentType
}

// ValidationError lists everything the request is missing, all at once,
// so the operator fixes the form in one pass.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("не найдены данные для: %s", strings.Join(e.Missing, ", "))
}

// templateContext is what the agreement templates render with.
type templateContext struct {
	AddendumNo        string
	Contract          string
	CurrentDate       string
	CompanyName       string
	DirectorPosition  string
	DirectorFIO       string
	DeliveryMonthYear string
	ProductName       string
	TonsFull          string
	PriceFull         string
	BasisFull         string
	LocationFull      string
	PayDate           string
	Initials          string
}

var agreementTemplates = map[DocumentType]*template.Template{
	Prepayment:      template.Must(template.New("prepayment").Parse(prepaymentText)),
	DeferredPayment: template.Must(template.New("deferment_pay").Parse(defermentText)),
}

const prepaymentText = `ДОПОЛНИТЕЛЬНОЕ СОГЛАШЕНИЕ №{{.AddendumNo}}
к Договору поставки нефтепродуктов №{{.Contract}}

{{.CurrentDate}}

Поставщик и {{.CompanyName}} в лице {{.DirectorPosition}} {{.DirectorFIO}}, именуемое в дальнейшем «Покупатель», заключили настоящее дополнительное соглашение о нижеследующем:

1. Поставщик обязуется передать в собственность Покупателя {{.DeliveryMonthYear}} следующий товар:
   Наименование товара: {{.ProductName}}
   Количество: {{.TonsFull}} тонн
   Цена за одну тонну: {{.PriceFull}} рублей, включая НДС.
2. Базис поставки: {{.BasisFull}}
   {{.LocationFull}}
3. Покупатель производит оплату товара в размере 100% стоимости в срок до {{.PayDate}}.

Подписи сторон:

Поставщик __________________          Покупатель __________________ {{.Initials}}
`

const defermentText = `ДОПОЛНИТЕЛЬНОЕ СОГЛАШЕНИЕ №{{.AddendumNo}}
к Договору поставки нефтепродуктов №{{.Contract}}

{{.CurrentDate}}

Поставщик и {{.CompanyName}} в лице {{.DirectorPosition}} {{.DirectorFIO}}, именуемое в дальнейшем «Покупатель», заключили настоящее дополнительное соглашение о нижеследующем:

1. Поставщик обязуется передать в собственность Покупателя {{.DeliveryMonthYear}} следующий товар:
   Наименование товара: {{.ProductName}}
   Количество: {{.TonsFull}} тонн
   Цена за одну тонну: {{.PriceFull}} рублей, включая НДС.
2. Базис поставки: {{.BasisFull}}
   {{.LocationFull}}
3. Покупателю предоставляется отсрочка платежа. Оплата производится не позднее {{.PayDate}}.

Подписи сторон:

Поставщик __________________          Покупатель __________________ {{.Initials}}
`

// Generator renders supplementary agreements from the roster and the
// dictionaries.
type Generator struct {
	clients map[string]roster.Client
	dicts   Dictionaries
	now     func() time.Time
	logger  logging.Logger
}

// NewGenerator creates a Generator. Client keys and dictionary keys are
// matched case-insensitively.
func NewGenerator(clients map[string]roster.Client, dicts Dictionaries, logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Generator{
		clients: lowerClientKeys(clients),
		dicts: Dictionaries{
			Products:  lowerKeys(dicts.Products),
			Locations: lowerKeys(dicts.Locations),
			Depots:    lowerKeys(dicts.Depots),
		},
		now:    time.Now,
		logger: logger,
	}
}

// Generate renders the agreement and returns the document bytes together
// with the file name base, extension excluded.
func (g *Generator) Generate(req Request) ([]byte, string, error) {
	if req.Type == "" {
		req.Type = Prepayment
	}
	tmpl, ok := agreementTemplates[req.Type]
	if !ok {
		return nil, "", fmt.Errorf("неизвестный тип документа: %s", req.Type)
	}

	client, clientOK := g.clients[strings.ToLower(req.ClientKey)]
	productName, productOK := g.dicts.Products[strings.ToLower(req.ProductKey)]

	var missing []string
	if !clientOK {
		missing = append(missing, fmt.Sprintf("клиент '%s'", req.ClientKey))
	}
	if !productOK {
		missing = append(missing, fmt.Sprintf("товар '%s'", req.ProductKey))
	}

	locationFull, locationName, locMissing := g.resolveLocation(req)
	missing = append(missing, locMissing...)

	if req.Tons <= 0 {
		missing = append(missing, "количество тонн")
	}
	if req.PricePerTon <= 0 {
		missing = append(missing, "цена за тонну")
	}
	if len(missing) > 0 {
		return nil, "", &ValidationError{Missing: missing}
	}

	now := g.now()
	ctx := templateContext{
		AddendumNo:        req.AddendumNo,
		Contract:          client.Contract,
		CurrentDate:       fmt.Sprintf("«%d» %s %dг.", now.Day(), monthsGenitive[now.Month()-1], now.Year()),
		CompanyName:       client.CompanyName,
		DirectorPosition:  client.DirectorPosition,
		DirectorFIO:       client.DirectorFIO,
		DeliveryMonthYear: fmt.Sprintf("в %s %d г.", monthsPrepositional[req.PayDate.Month()-1], req.PayDate.Year()),
		ProductName:       productName,
		TonsFull:          fmt.Sprintf("%d (%s)", req.Tons, AmountInWords(req.Tons)),
		PriceFull:         fmt.Sprintf("%s (%s)", groupDigits(req.PricePerTon), AmountInWords(req.PricePerTon)),
		BasisFull:         basisTexts[req.Method],
		LocationFull:      locationFull,
		PayDate:           req.PayDate.Format("02.01.2006"),
		Initials:          client.Initials,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return nil, "", fmt.Errorf("ошибка генерации документа: %w", err)
	}

	filename := g.filename(req, locationName)
	g.logger.Info("Generated agreement",
		logging.Field{Key: logging.FieldCompany, Value: req.ClientKey},
		logging.Field{Key: logging.FieldOutputFile, Value: filename})
	return buf.Bytes(), filename, nil
}

// resolveLocation returns the full location text and the display name
// used in the file name, plus whatever was missing.
func (g *Generator) resolveLocation(req Request) (full, display string, missing []string) {
	switch req.Method {
	case Pickup:
		if req.PickupLocation == "" {
			return "", "", []string{"не выбрана локация для самовывоза"}
		}
		full, ok := g.dicts.Locations[strings.ToLower(req.PickupLocation)]
		if !ok {
			return "", "", []string{fmt.Sprintf("адрес '%s'", req.PickupLocation)}
		}
		return full, capitalize(req.PickupLocation), nil
	case Depot:
		if req.DepotName == "" {
			return "", "", []string{"не выбрана нефтебаза"}
		}
		full, ok := g.dicts.Depots[strings.ToLower(req.DepotName)]
		if !ok {
			return "", "", []string{fmt.Sprintf("нефтебаза '%s'", req.DepotName)}
		}
		return full, "Нефтебаза", nil
	case Delivery:
		if strings.TrimSpace(req.DeliveryAddress) == "" {
			return "", "", []string{"не указан адрес доставки"}
		}
		return strings.TrimSpace(req.DeliveryAddress), "Доставка", nil
	default:
		return "", "", []string{fmt.Sprintf("способ передачи '%s'", req.Method)}
	}
}

func (g *Generator) filename(req Request, locationName string) string {
	product := strings.ToUpper(req.ProductKey)
	switch req.Method {
	case Pickup:
		return fmt.Sprintf("Дополнительное соглашение №%s %s %s Самовывоз", req.AddendumNo, product, locationName)
	case Depot:
		return fmt.Sprintf("Дополнительное соглашение №%s %s Нефтебаза", req.AddendumNo, product)
	default:
		return fmt.Sprintf("Дополнительное соглашение №%s %s Доставка", req.AddendumNo, product)
	}
}

func lowerKeys(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}

func lowerClientKeys(in map[string]roster.Client) map[string]roster.Client {
	out := make(map[string]roster.Client, len(in))
	for k, v := range in {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
