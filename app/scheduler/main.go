package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/database/mongoclient"
	"github.com/x-xyz/goauction/base/database/redisclient"
	"github.com/x-xyz/goauction/base/env"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/metrics"
	bValidator "github.com/x-xyz/goauction/base/validator"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/keys"
	"github.com/x-xyz/goauction/service/cache"
	"github.com/x-xyz/goauction/service/cache/provider/primitive"
	"github.com/x-xyz/goauction/service/eventbus"
	"github.com/x-xyz/goauction/service/locker"
	"github.com/x-xyz/goauction/service/query"
	"github.com/x-xyz/goauction/service/redis"
	"github.com/x-xyz/goauction/service/relay"
	"github.com/x-xyz/goauction/service/watcher"
	auction_repository "github.com/x-xyz/goauction/stores/auction/repository"
	auction_scheduler "github.com/x-xyz/goauction/stores/auction/scheduler"
	auction_usecase "github.com/x-xyz/goauction/stores/auction/usecase"
	notification_repository "github.com/x-xyz/goauction/stores/notification/repository"
	notification_usecase "github.com/x-xyz/goauction/stores/notification/usecase"
	user_repository "github.com/x-xyz/goauction/stores/user/repository"
	user_usecase "github.com/x-xyz/goauction/stores/user/usecase"
)

var configFile = pflag.String("config", "infra/configs/config.yaml", "path of the yaml config")

func init() {
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	if err := log.Setup(viper.GetString("log.level"), viper.GetBool("log.development")); err != nil {
		panic(err)
	}
}

// The standalone scheduler shares mongo with the api replicas. Watchers live
// in the api processes, so broadcasts only reach them through the relay.
func main() {
	defer log.Sync()

	c := ctx.WithLogFields(ctx.Background(), log.Fields{"app": "scheduler", "instance": env.InstanceId()})

	c.Info("init mongo")
	mongoClient := mongoclient.MustConnectMongoClient(mongoclient.Config{
		URI:                viper.GetString("mongo.uri"),
		AuthDBName:         viper.GetString("mongo.authDBName"),
		DBName:             viper.GetString("mongo.dbName"),
		EnableSSL:          viper.GetBool("mongo.enableSSL"),
		SetSafe:            true,
		PoolSizeMultiplier: 1,
	})
	q := query.New(mongoClient, query.WithCheckIndex(viper.GetBool("mongo.checkIndex")))

	c.Info("init redis")
	redisName := viper.GetString("redis.name")
	redisPool := redisclient.MustConnectRedis(viper.GetString("redis.uri"), viper.GetString("redis.password"), redisclient.RedisParam{
		PoolMultiplier: viper.GetFloat64("redis.poolMultiplier"),
		Retry:          true,
	})
	redisService := redis.New(redisName, metrics.New(redisName), &redis.Pools{
		Src: redisPool,
	})

	var auctionLocker auction.Locker
	if viper.GetString("lock.driver") == "redis" {
		auctionLocker = locker.NewRedis(redisService, locker.WithTTL(viper.GetDuration("lock.ttl")))
	} else {
		c.Warn("local lock in a standalone scheduler only relies on auction versions against the api replicas")
		auctionLocker = locker.NewLocal()
	}

	notifierCfg := &notification_usecase.NotifierCfg{
		Registry:    watcher.New(metrics.New("watcher")),
		Inbox:       notification_repository.New(q),
		Relay:       relay.NewRedis(redisService),
		Workers:     viper.GetInt("notification.workers"),
		QueueLength: viper.GetInt("notification.queueLength"),
	}
	if viper.GetBool("nats.enabled") {
		archive, closeNats, err := eventbus.Connect(c, eventbus.Config{
			Url:    viper.GetString("nats.url"),
			Stream: viper.GetString("nats.stream"),
			MaxAge: viper.GetDuration("nats.maxAge"),
		})
		if err != nil {
			c.WithField("err", err).Panic("eventbus.Connect failed")
		}
		defer closeNats()
		notifierCfg.Archive = archive
	}
	notifier := notification_usecase.New(notifierCfg)
	defer notifier.Close()

	userLookup := user_usecase.NewLookup(user_repository.New(q), cache.New(cache.ServiceConfig{
		Ttl:   viper.GetDuration("userCache.ttl"),
		Pfx:   keys.PfxUserRef,
		Cache: primitive.NewPrimitive("user", viper.GetInt("userCache.sizeMB")),
	}))
	auctionUseCase := auction_usecase.New(&auction_usecase.AuctionUseCaseCfg{
		Repo:       auction_repository.New(q),
		Locker:     auctionLocker,
		Notifier:   notifier,
		UserLookup: userLookup,
		Validator:  bValidator.New(),
	})

	scheduler := auction_scheduler.New(&auction_scheduler.SchedulerCfg{
		Interval:       viper.GetDuration("scheduler.interval"),
		AuctionUseCase: auctionUseCase,
		BatchSize:      viper.GetInt("scheduler.batchSize"),
	})

	runCtx, stop := ctx.WithCancel(c)
	scheduler.Start(runCtx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	c.WithField("signal", sig).Info("received signal")

	stop()
	scheduler.Wait()
	c.Info("scheduler stopped")
}
