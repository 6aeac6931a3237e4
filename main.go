package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	paymentV1 "github.com/antinvestor/apis/go/payment/v1"
	"github.com/antinvestor/service-mpesa/config"
	"github.com/antinvestor/service-mpesa/service/coreapi"
	"github.com/antinvestor/service-mpesa/service/events"
	"github.com/antinvestor/service-mpesa/service/models"
	"github.com/antinvestor/service-mpesa/service/repository"
	"github.com/nats-io/nats.go"
	"github.com/pitabwire/frame"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	_ "gorm.io/driver/postgres"
)

const (
	defaultNatsURL      = "nats://nats:4222"
	natsConnectAttempts = 10
	natsConnectDelay    = 2 * time.Second
)

func main() {
	serviceName := "service_mpesa"
	mpesaConfig, err := frame.ConfigFromEnv[config.MpesaConfig]()
	if err != nil {
		fmt.Printf("could not load config: %v\n", err)
	}
	ctx, service := frame.NewService(serviceName, frame.WithConfig(&mpesaConfig))
	defer service.Stop(ctx)

	logger := service.Log(ctx).WithField("type", "main")
	logger.Info("starting service...")

	serviceOptions := []frame.Option{frame.WithDatastore()}
	service.Init(ctx, serviceOptions...)

	if mpesaConfig.DoDatabaseMigrate() {
		err = service.MigrateDatastore(ctx, mpesaConfig.GetDatabaseMigrationPath(),
			&models.Transaction{}, &models.CallbackResult{})
		if err != nil {
			logger.WithError(err).Fatal("could not migrate successfully")
		}
		return
	}

	db := service.DB(ctx, false)
	if db == nil {
		logger.WithField("DATABASE_URL", os.Getenv("DATABASE_URL")).Fatal("database connection is nil, check DATABASE_URL and database availability")
		return
	}
	if err = db.AutoMigrate(&models.Transaction{}, &models.CallbackResult{}); err != nil {
		logger.WithError(err).Fatal("failed to auto-migrate database tables")
		return
	}

	credentials, err := coreapi.NewCredentials(mpesaConfig.ConsumerKey, mpesaConfig.ConsumerSecret, mpesaConfig.TokenURL)
	if err != nil {
		logger.WithError(err).Fatal("could not load gateway credentials")
	}

	gateway := coreapi.NewGateway(credentials,
		coreapi.EndpointsFromBaseURL(mpesaConfig.APIBaseURL),
		coreapi.NewClient(
			coreapi.WithTimeout(mpesaConfig.RequestTimeout()),
			coreapi.WithRetries(mpesaConfig.MaxRetries, mpesaConfig.RetryInterval()),
		))

	var paymentCli events.PaymentStatusClient
	clientConn, err := grpc.DialContext(
		ctx,
		mpesaConfig.PaymentServiceURI,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(1024*1024*16),
			grpc.MaxCallSendMsgSize(1024*1024*16),
		),
	)
	if err != nil {
		logger.WithError(err).Error("failed to connect to payment service")
	} else {
		defer clientConn.Close()
		paymentCli = paymentV1.NewPaymentServiceClient(clientConn)
		logger.WithField("endpoint", mpesaConfig.PaymentServiceURI).Info("connected to payment service")
	}

	transactions := repository.NewTransactionRepository(service)
	callbacks := repository.NewCallbackResultRepository(service)

	registerURL := &events.RegisterURL{Service: service, Client: gateway}
	disburse := &events.Disburse{Service: service, Client: gateway, Transactions: transactions, PaymentCli: paymentCli}
	collect := &events.Collect{Service: service, Client: gateway, Transactions: transactions, PaymentCli: paymentCli, Passkey: mpesaConfig.StkPasskey}
	payBill := &events.PayBill{Service: service, Client: gateway, Transactions: transactions, PaymentCli: paymentCli}
	buyGoods := &events.BuyGoods{Service: service, Client: gateway, Transactions: transactions, PaymentCli: paymentCli}
	b2cResult := &events.B2CResult{Service: service, Transactions: transactions, Callbacks: callbacks, PaymentCli: paymentCli}
	b2bResult := &events.B2BResult{Service: service, Transactions: transactions, Callbacks: callbacks, PaymentCli: paymentCli}
	c2bCallback := &events.C2BCallback{Service: service, Transactions: transactions, Callbacks: callbacks, PaymentCli: paymentCli}

	serviceOptions = append(serviceOptions,
		frame.WithRegisterEvents(
			registerURL, disburse, collect, payBill, buyGoods,
			b2cResult, b2bResult, c2bCallback,
			&events.TransactionSave{Service: service, Repository: transactions},
			&events.CallbackResultSave{Service: service, Repository: callbacks},
		))

	natsURL := normaliseNatsURL(mpesaConfig.NatsURL)
	connected := false
	for i := range natsConnectAttempts {
		logger.WithField("attempt", i+1).WithField("natsURL", natsURL).Info("attempting to connect to NATS")
		nc, connErr := nats.Connect(natsURL)
		if connErr != nil {
			logger.WithError(connErr).WithField("attempt", i+1).Warn("failed to connect to NATS, retrying after delay")
			time.Sleep(natsConnectDelay)
			continue
		}
		nc.Close()
		connected = true
		break
	}
	if !connected {
		logger.WithField("retries", natsConnectAttempts).Warn("failed to connect to NATS, falling back to memory based pubsub")
	}

	eventHandlers := []frame.EventI{registerURL, disburse, collect, payBill, buyGoods, b2cResult, b2bResult, c2bCallback}
	for _, event := range eventHandlers {
		topic := event.Name()
		url := "mem://" + topic
		if connected {
			url = withSubject(natsURL, topic)
		}
		logger.WithField("topic", topic).WithField("url", url).Debug("registering subscriber")
		serviceOptions = append(serviceOptions,
			frame.WithRegisterSubscriber(topic, url, &events.QueueHandler{Event: event}))
	}

	service.Init(ctx, serviceOptions...)

	logger.WithField("server http port", mpesaConfig.HTTPServerPort).Info("initiating server operations")
	if err = service.Run(ctx, ":8080"); err != nil {
		logger.WithError(err).Fatal("could not run server")
	}
}

// normaliseNatsURL accepts host:port values and defaults to the cluster service name.
func normaliseNatsURL(raw string) string {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return defaultNatsURL
	case strings.HasPrefix(raw, "nats://"):
		return raw
	default:
		return "nats://" + raw
	}
}

// withSubject sets the subject query parameter, replacing any that is present.
func withSubject(baseURL, subject string) string {
	base, query, _ := strings.Cut(baseURL, "?")

	params := []string{}
	if query != "" {
		for _, p := range strings.Split(query, "&") {
			if !strings.HasPrefix(p, "subject=") {
				params = append(params, p)
			}
		}
	}
	params = append(params, "subject="+subject)
	return base + "?" + strings.Join(params, "&")
}
