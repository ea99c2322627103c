package main

// samplePage renders when no page argument is given.
const samplePage = `# Acme Outdoor Store

Gear up for your next adventure. Free shipping on orders over $50.

![Autumn sale banner](https://shop.example.com/img/autumn-sale.png)

## Featured products

- [Trailblazer hiking boots](https://shop.example.com/p/boots) — $129
- [Summit 2-person tent](https://shop.example.com/p/tent) — $249
- [Glacier insulated bottle](https://shop.example.com/p/bottle) — $34

## Shipping

Orders placed before 2pm ship the same day. Standard delivery takes three
to five business days; express delivery arrives the next morning.

## Contact us

Questions about an order? Search our help pages or write to
[support@shop.example.com](mailto:support@shop.example.com).
`
