package utils

import "webup/hostup/domain"

// Certbot asks the certificate issuer for a certificate covering the
// hostname. The issuer reloads the proxy daemon itself on success.
func Certbot(hostname string) error {
	return domain.NewCommand([]string{"certbot", "--nginx", "-d", hostname}).Execute()
}
