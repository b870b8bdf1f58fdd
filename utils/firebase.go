package utils

import (
	"context"

	"hotelops/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase App and Messaging client.
func FirebaseInit() {
	logger := GetLogger()
	ctx := context.Background()
	opt := option.WithCredentialsFile(config.AppConfig.FirebaseCredentialsFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		logger.Fatal("firebase: error initializing app", zap.Error(err))
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		logger.Fatal("firebase: error getting Messaging client", zap.Error(err))
	}

	FCMClient = client
}
