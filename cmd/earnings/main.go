// Command earnings herramientas de operación del ledger: desglose, recálculo,
// migraciones y promoción de admins.
package main

func main() {
	Execute()
}
