// Package pages holds the protected views of the client. Each view owns one
// fetch.Controller, is mounted by the router when its route is entered and
// renders itself as text. Forms live next to the controller they refresh.
package pages
