package configs

import (
	"log"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

var (
	midtransSnapClient    snap.Client
	midtransCoreAPIClient coreapi.Client
)

func InitMidtransClients() {
	env := midtrans.Sandbox
	if LoadENV.APP_ENV == "production" {
		env = midtrans.Production
	}

	midtransSnapClient.New(LoadENV.MIDTRANS_SERVER_KEY, env)
	midtransCoreAPIClient.New(LoadENV.MIDTRANS_SERVER_KEY, env)

	midtrans.ClientKey = LoadENV.MIDTRANS_CLIENT_KEY
	midtrans.ServerKey = LoadENV.MIDTRANS_SERVER_KEY
	midtrans.Environment = env

	log.Println("✅ Midtrans clients initialized.")
}

func GetMidtransSnapClient() snap.Client {
	return midtransSnapClient
}

func GetMidtransCoreAPIClient() coreapi.Client {
	return midtransCoreAPIClient
}
