package main

import (
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"google.golang.org/api/option"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/database/mongoclient"
	"github.com/x-xyz/goauction/base/database/redisclient"
	"github.com/x-xyz/goauction/base/env"
	"github.com/x-xyz/goauction/base/goroutine"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/metrics"
	bValidator "github.com/x-xyz/goauction/base/validator"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/bid"
	"github.com/x-xyz/goauction/domain/file"
	hcdomain "github.com/x-xyz/goauction/domain/healthcheck"
	"github.com/x-xyz/goauction/domain/keys"
	"github.com/x-xyz/goauction/domain/notification"
	"github.com/x-xyz/goauction/domain/payment"
	"github.com/x-xyz/goauction/domain/user"
	"github.com/x-xyz/goauction/domain/watchlist"
	mmiddleware "github.com/x-xyz/goauction/middleware"
	"github.com/x-xyz/goauction/service/cache"
	"github.com/x-xyz/goauction/service/cache/provider/primitive"
	"github.com/x-xyz/goauction/service/eventbus"
	"github.com/x-xyz/goauction/service/locker"
	"github.com/x-xyz/goauction/service/memtx"
	"github.com/x-xyz/goauction/service/query"
	"github.com/x-xyz/goauction/service/redis"
	"github.com/x-xyz/goauction/service/relay"
	"github.com/x-xyz/goauction/service/watcher"
	auction_delivery "github.com/x-xyz/goauction/stores/auction/delivery/http"
	auction_repository "github.com/x-xyz/goauction/stores/auction/repository"
	auction_scheduler "github.com/x-xyz/goauction/stores/auction/scheduler"
	auction_usecase "github.com/x-xyz/goauction/stores/auction/usecase"
	auth_middleware "github.com/x-xyz/goauction/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-xyz/goauction/stores/auth/usecase"
	bid_delivery "github.com/x-xyz/goauction/stores/bid/delivery/http"
	bid_repository "github.com/x-xyz/goauction/stores/bid/repository"
	bid_usecase "github.com/x-xyz/goauction/stores/bid/usecase"
	file_delivery "github.com/x-xyz/goauction/stores/file/delivery/http"
	file_repository "github.com/x-xyz/goauction/stores/file/repository"
	file_usecase "github.com/x-xyz/goauction/stores/file/usecase"
	hc_delivery "github.com/x-xyz/goauction/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/goauction/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/goauction/stores/healthcheck/usecase"
	notification_delivery "github.com/x-xyz/goauction/stores/notification/delivery/http"
	notification_ws "github.com/x-xyz/goauction/stores/notification/delivery/ws"
	notification_repository "github.com/x-xyz/goauction/stores/notification/repository"
	notification_usecase "github.com/x-xyz/goauction/stores/notification/usecase"
	payment_repository "github.com/x-xyz/goauction/stores/payment/repository"
	user_delivery "github.com/x-xyz/goauction/stores/user/delivery/http"
	user_repository "github.com/x-xyz/goauction/stores/user/repository"
	user_usecase "github.com/x-xyz/goauction/stores/user/usecase"
	watchlist_delivery "github.com/x-xyz/goauction/stores/watchlist/delivery/http"
	watchlist_repository "github.com/x-xyz/goauction/stores/watchlist/repository"
	watchlist_usecase "github.com/x-xyz/goauction/stores/watchlist/usecase"
)

const (
	storeDriverMongo  = "mongo"
	storeDriverMemory = "memory"
	lockDriverRedis   = "redis"
)

var configFile = pflag.String("config", "infra/configs/config.yaml", "path of the yaml config")

func init() {
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if err := log.Setup(viper.GetString("log.level"), viper.GetBool("log.development")); err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

type stores struct {
	auction auction.Repo
	bid     bid.Repo
	user    user.Repo
	inbox     notification.InboxRepo
	payment   payment.Repo
	watchlist watchlist.Repo
	tx        domain.Transactor
	health    []hcdomain.HealthCheckRepo
}

func mustConnectStores(c ctx.Ctx) *stores {
	driver := viper.GetString("store.driver")
	switch driver {
	case storeDriverMemory:
		c.Warn("memory store selected, data is lost on restart")
		return &stores{
			auction:   auction_repository.NewMemory(),
			bid:       bid_repository.NewMemory(),
			user:      user_repository.NewMemory(),
			inbox:     notification_repository.NewMemory(),
			payment:   payment_repository.NewMemory(),
			watchlist: watchlist_repository.NewMemory(),
			tx:        memtx.New(),
		}
	case storeDriverMongo, "":
	default:
		c.WithField("driver", driver).Panic("unknown store.driver")
	}

	c.Info("init mongo")
	mongoClient := mongoclient.MustConnectMongoClient(mongoclient.Config{
		URI:                viper.GetString("mongo.uri"),
		AuthDBName:         viper.GetString("mongo.authDBName"),
		DBName:             viper.GetString("mongo.dbName"),
		EnableSSL:          viper.GetBool("mongo.enableSSL"),
		SetSafe:            true,
		PoolSizeMultiplier: 2,
	})
	checkIndex := viper.GetBool("mongo.checkIndex")
	transaction := viper.GetBool("mongo.transaction")
	if checkIndex || !transaction {
		c.WithFields(log.Fields{"checkIndex": checkIndex, "transaction": transaction}).
			Panic("bid placement needs mongo transactions, set mongo.transaction and unset mongo.checkIndex")
	}
	q := query.New(mongoClient, query.WithTransaction(transaction))

	if viper.GetBool("mongo.ensureIndexes") {
		inboxTTL := viper.GetDuration("notification.inboxTtl")
		for name, ensure := range map[string]func() error{
			"auction":      func() error { return auction_repository.EnsureIndexes(c, q) },
			"bid":          func() error { return bid_repository.EnsureIndexes(c, q) },
			"user":         func() error { return user_repository.EnsureIndexes(c, q) },
			"notification": func() error { return notification_repository.EnsureIndexes(c, q, inboxTTL) },
			"payment":      func() error { return payment_repository.EnsureIndexes(c, q) },
			"watchlist":    func() error { return watchlist_repository.EnsureIndexes(c, q) },
		} {
			if err := ensure(); err != nil {
				c.WithFields(log.Fields{"err": err, "repo": name}).Panic("EnsureIndexes failed")
			}
		}
	}

	return &stores{
		auction:   auction_repository.New(q),
		bid:       bid_repository.New(q),
		user:      user_repository.New(q),
		inbox:     notification_repository.New(q),
		payment:   payment_repository.New(q),
		watchlist: watchlist_repository.New(q),
		tx:        q,
		health:    []hcdomain.HealthCheckRepo{hc_repo.New("mongo", q)},
	}
}

func mustConnectRedis(c ctx.Ctx) redis.Service {
	uri := viper.GetString("redis.uri")
	if uri == "" {
		return nil
	}
	c.Info("init redis")
	name := viper.GetString("redis.name")
	pool := redisclient.MustConnectRedis(uri, viper.GetString("redis.password"), redisclient.RedisParam{
		PoolMultiplier: viper.GetFloat64("redis.poolMultiplier"),
		Retry:          true,
	})
	return redis.New(name, metrics.New(name), &redis.Pools{
		Src: pool,
	})
}

func mustFileWriter(c ctx.Ctx) file.Writer {
	if viper.GetBool("gcs.enabled") {
		var opts []option.ClientOption
		if creds := viper.GetString("gcs.credentialsFile"); creds != "" {
			opts = append(opts, option.WithCredentialsFile(creds))
		}
		storageClient, err := storage.NewClient(c, opts...)
		if err != nil {
			c.WithField("err", err).Panic("storage.NewClient failed")
		}
		w, err := file_repository.NewCloudStorageWriter(&file_repository.CloudStorageWriterCfg{
			Timeout:    viper.GetDuration("gcs.timeout"),
			Client:     storageClient,
			BucketName: viper.GetString("gcs.bucket"),
			Url:        viper.GetString("gcs.baseUrl"),
		})
		if err != nil {
			c.WithField("err", err).Panic("NewCloudStorageWriter failed")
		}
		return w
	}

	w, err := file_repository.NewLocalWriter(viper.GetString("upload.dir"), viper.GetString("upload.baseUrl"))
	if err != nil {
		c.WithField("err", err).Panic("NewLocalWriter failed")
	}
	return w
}

// mustDecimal reads a money amount, zero when unset
func mustDecimal(c ctx.Ctx, key string) decimal.Decimal {
	raw := viper.GetString(key)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Panic("invalid decimal config")
	}
	return d
}

func main() {
	defer log.Sync()

	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		// compressing breaks the websocket upgrade
		Skipper: func(c echo.Context) bool { return c.Path() == "/ws" },
	}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware(viper.GetStringSlice("server.allowOrigins")...)
	e.Use(middL.AddContext())
	e.Use(middL.ResponseLogger())
	e.Use(middL.CORS)
	validate := bValidator.New()
	e.Validator = bValidator.NewCustomValidator(validate)

	context := ctx.WithLogFields(ctx.Background(), log.Fields{"app": "api", "instance": env.InstanceId()})

	st := mustConnectStores(context)
	redisService := mustConnectRedis(context)
	if redisService != nil {
		st.health = append(st.health, hc_repo.New("redis", redisService))
	}

	mmiddleware.SetupCache(redisService)
	e.Use(mmiddleware.CacheHttp(viper.GetDuration("httpCache.ttl"), "/auctions/:id/bids/trend"))

	// auction locks
	var auctionLocker auction.Locker
	if viper.GetString("lock.driver") == lockDriverRedis {
		if redisService == nil {
			context.Panic("lock.driver redis needs redis.uri")
		}
		auctionLocker = locker.NewRedis(redisService, locker.WithTTL(viper.GetDuration("lock.ttl")))
	} else {
		auctionLocker = locker.NewLocal()
	}

	// notification fan-out
	registry := watcher.New(metrics.New("watcher"))
	notifierCfg := &notification_usecase.NotifierCfg{
		Registry:    registry,
		Inbox:       st.inbox,
		Workers:     viper.GetInt("notification.workers"),
		QueueLength: viper.GetInt("notification.queueLength"),
	}
	if viper.GetBool("notification.relay") {
		if redisService == nil {
			context.Panic("notification.relay needs redis.uri")
		}
		notifierCfg.Relay = relay.NewRedis(redisService)
	}
	if viper.GetBool("nats.enabled") {
		archive, closeNats, err := eventbus.Connect(context, eventbus.Config{
			Url:    viper.GetString("nats.url"),
			Stream: viper.GetString("nats.stream"),
			MaxAge: viper.GetDuration("nats.maxAge"),
		})
		if err != nil {
			context.WithField("err", err).Panic("eventbus.Connect failed")
		}
		defer closeNats()
		notifierCfg.Archive = archive
	}
	notifier := notification_usecase.New(notifierCfg)
	defer notifier.Close()

	listenCtx, stopListen := ctx.WithCancel(context)
	defer stopListen()
	goroutine.RecoverableGo(func() {
		notifier.Listen(listenCtx)
	}, goroutine.WithName("relay-listener"), goroutine.WithLogger(context.Logger))

	// construct repository, usecase and delivery
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"), viper.GetDuration("auth.tokenTtl"), nil)
	authMiddleware := auth_middleware.New(auth)

	userCache := cache.New(cache.ServiceConfig{
		Ttl:   viper.GetDuration("userCache.ttl"),
		Pfx:   keys.PfxUserRef,
		Cache: primitive.NewPrimitive("user", viper.GetInt("userCache.sizeMB")),
	})
	userUseCase := user_usecase.New(&user_usecase.UserUseCaseCfg{
		Repo:      st.user,
		Auth:      auth,
		Validator: validate,
	})
	userLookup := user_usecase.NewLookup(st.user, userCache)

	auctionUseCase := auction_usecase.New(&auction_usecase.AuctionUseCaseCfg{
		Repo:        st.auction,
		PaymentRepo: st.payment,
		Locker:      auctionLocker,
		Notifier:    notifier,
		UserLookup:  userLookup,
		Validator:   validate,
	})
	bidUseCase := bid_usecase.New(&bid_usecase.BidUseCaseCfg{
		Repo:         st.bid,
		AuctionRepo:  st.auction,
		Locker:       auctionLocker,
		Transactor:   st.tx,
		Notifier:     notifier,
		MinIncrement: mustDecimal(context, "bid.minIncrement"),
	})
	watchlistUseCase := watchlist_usecase.New(&watchlist_usecase.WatchlistUseCaseCfg{
		Repo:        st.watchlist,
		AuctionRepo: st.auction,
	})
	inboxUseCase := notification_usecase.NewInbox(&notification_usecase.InboxUseCaseCfg{
		Repo: st.inbox,
	})
	fileUseCase := file_usecase.New(&file_usecase.FileUseCaseCfg{
		Writer:       mustFileWriter(context),
		MaxImageSize: viper.GetInt("upload.maxBytes"),
	})

	hc_delivery.New(e, hc_usecase.New(st.health...))
	user_delivery.New(e, userUseCase, authMiddleware)
	auction_delivery.New(e, auctionUseCase, authMiddleware)
	bid_delivery.New(e, bidUseCase, authMiddleware)
	notification_delivery.New(e, inboxUseCase, authMiddleware)
	watchlist_delivery.New(e, watchlistUseCase, authMiddleware)
	notification_ws.New(e, registry, auctionUseCase, authMiddleware)
	file_delivery.New(e, fileUseCase, authMiddleware)
	if !viper.GetBool("gcs.enabled") {
		e.Static(viper.GetString("upload.route"), viper.GetString("upload.dir"))
	}

	// the scheduler may also run as its own deployment, see app/scheduler
	var scheduler *auction_scheduler.Scheduler
	if viper.GetBool("scheduler.enabled") {
		scheduler = auction_scheduler.New(&auction_scheduler.SchedulerCfg{
			Interval:       viper.GetDuration("scheduler.interval"),
			AuctionUseCase: auctionUseCase,
			BatchSize:      viper.GetInt("scheduler.batchSize"),
		})
	}
	schedulerCtx, stopScheduler := ctx.WithCancel(context)
	defer stopScheduler()
	if scheduler != nil {
		scheduler.Start(schedulerCtx)
	}

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")

	stopScheduler()
	if scheduler != nil {
		scheduler.Wait()
	}

	shutdownCtx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
