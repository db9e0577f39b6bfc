package domain

func NewApp(reader ProfileReadStore, writer ProfileWriteStore) *Application {
	return &Application{reader: reader, writer: writer}
}
