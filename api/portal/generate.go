package portal

//go:generate swag init --dir ../../ -g internal/portal/http/router.go --output . --outputTypes go --parseDependency
